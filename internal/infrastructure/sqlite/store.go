// Package sqlite implementa los puertos de persistencia sobre SQLite (database/sql + go-sqlite3).
// Se usa en modo local (DB_DRIVER=sqlite) y en los tests con ":memory:".
// El esquema se aplica en New; los decimales se guardan como TEXT para no perder precisión
// y las fechas como TEXT UTC de ancho fijo para que ORDER BY sea cronológico.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store conexión SQLite con el esquema aplicado.
type Store struct {
	db *sql.DB
}

// New abre la base en path (":memory:" para una base en memoria) y aplica el esquema.
func New(path string) (*Store, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if path != ":memory:" {
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: SQLite admite un escritor a la vez y ":memory:" es por conexión.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}
	return s, nil
}

// DB expone la conexión para construir repositorios.
func (s *Store) DB() *sql.DB { return s.db }

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	display_name  TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	is_active     INTEGER NOT NULL DEFAULT 1,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	parent_id  TEXT REFERENCES categories(id),
	code       TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (user_id, code)
);

CREATE TABLE IF NOT EXISTS units (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	code       TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (user_id, code)
);

CREATE TABLE IF NOT EXISTS warehouses (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	code       TEXT NOT NULL,
	name       TEXT NOT NULL,
	address    TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (user_id, code)
);

CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	unit_code   TEXT NOT NULL DEFAULT 'pcs',
	category_id TEXT REFERENCES categories(id),
	cost_price  TEXT,
	sale_price  TEXT,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS suppliers (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	phone      TEXT,
	email      TEXT,
	address    TEXT,
	allow_debt INTEGER NOT NULL DEFAULT 1,
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS customers (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	phone      TEXT,
	email      TEXT,
	address    TEXT,
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS stock_moves (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	product_id   TEXT NOT NULL REFERENCES products(id),
	warehouse_id TEXT REFERENCES warehouses(id),
	qty_delta    TEXT NOT NULL,
	reason       TEXT NOT NULL CHECK (reason IN ('IN', 'OUT', 'ADJUST')),
	supplier_id  TEXT REFERENCES suppliers(id),
	customer_id  TEXT REFERENCES customers(id),
	unit_price   TEXT,
	pay_type     TEXT CHECK (pay_type IN ('CASH', 'CREDIT')),
	note         TEXT,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stock_moves_user_product_date
	ON stock_moves(user_id, product_id, created_at);

CREATE TABLE IF NOT EXISTS payable_ledgers (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	supplier_id  TEXT NOT NULL REFERENCES suppliers(id),
	type         TEXT NOT NULL CHECK (type IN ('BILL', 'PAYMENT', 'ADJUST')),
	amount_delta TEXT NOT NULL,
	note         TEXT,
	ref_move_id  TEXT REFERENCES stock_moves(id),
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payable_ledgers_user_supplier_date
	ON payable_ledgers(user_id, supplier_id, created_at);
`

// ── helpers ───────────────────────────────────────────────────────────────────

const timeLayout = "2006-01-02T15:04:05.000000000Z"

func fmtTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalPtr(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, fmt.Errorf("decimal inválido %q: %w", ns.String, err)
	}
	return &d, nil
}

// isUniqueViolation verifica si un error es una violación de constraint UNIQUE.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// where acumula condiciones y argumentos de un filtro opcional.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, arg)
}

func (w *where) sql() string {
	return strings.Join(w.conds, " AND ")
}
