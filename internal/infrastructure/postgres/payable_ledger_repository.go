package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.PayableLedgerRepository = (*PayableLedgerRepo)(nil)

// PayableLedgerRepo implementación de PayableLedgerRepository sobre PostgreSQL. Solo INSERT y SELECT.
type PayableLedgerRepo struct {
	q Querier
}

// NewPayableLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayableLedgerRepository(q Querier) *PayableLedgerRepo {
	return &PayableLedgerRepo{q: q}
}

const ledgerColumns = `l.id, l.user_id, l.supplier_id, l.type, l.amount_delta, l.note, l.ref_move_id, l.created_at`

const ledgerDetailSelect = `SELECT ` + ledgerColumns + `, s.name, m.id, m.product_id, p.name, m.qty_delta, m.unit_price
	FROM payable_ledgers l
	JOIN suppliers s ON s.id = l.supplier_id
	LEFT JOIN stock_moves m ON m.id = l.ref_move_id
	LEFT JOIN products p ON p.id = m.product_id`

// Create inserta el asiento.
func (r *PayableLedgerRepo) Create(ctx context.Context, l *entity.PayableLedger) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payable_ledgers (id, user_id, supplier_id, type, amount_delta, note, ref_move_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.UserID, l.SupplierID, string(l.Type), l.AmountDelta, l.Note, l.RefMoveID, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payable ledger: %w", err)
	}
	return nil
}

// GetDetail obtiene el asiento con proveedor y movimiento de referencia.
func (r *PayableLedgerRepo) GetDetail(ctx context.Context, userID, id string) (*entity.PayableLedgerDetail, error) {
	d, err := scanLedgerDetail(r.q.QueryRow(ctx, ledgerDetailSelect+` WHERE l.user_id = $1 AND l.id = $2`, userID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payable ledger: %w", err)
	}
	return d, nil
}

// List aplica los filtros opcionales; más recientes primero.
func (r *PayableLedgerRepo) List(ctx context.Context, userID string, f repository.LedgerFilter) ([]*entity.PayableLedgerDetail, error) {
	w := &where{}
	w.add("l.user_id = ?", userID)
	if f.SupplierID != "" {
		w.add("l.supplier_id = ?", f.SupplierID)
	}
	if f.Type != "" {
		w.add("l.type = ?", string(f.Type))
	}
	if f.From != nil {
		w.add("l.created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("l.created_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, ledgerDetailSelect+` WHERE `+w.sql()+` ORDER BY l.created_at DESC, l.id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payable ledgers: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayableLedgerDetail
	for rows.Next() {
		d, err := scanLedgerDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payable ledger: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListBySupplier historial completo del proveedor, del más antiguo al más reciente.
func (r *PayableLedgerRepo) ListBySupplier(ctx context.Context, userID, supplierID string) ([]*entity.PayableLedger, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ledgerColumns+` FROM payable_ledgers l
		WHERE l.user_id = $1 AND l.supplier_id = $2 ORDER BY l.created_at ASC, l.id ASC`, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier ledgers: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayableLedger
	for rows.Next() {
		var (
			l  entity.PayableLedger
			lr ledgerRow
		)
		if err := rows.Scan(lr.targets(&l)...); err != nil {
			return nil, fmt.Errorf("scan payable ledger: %w", err)
		}
		lr.fill(&l)
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *PayableLedgerRepo) ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM payable_ledgers WHERE user_id = $1 AND supplier_id = $2 LIMIT 1`, userID, supplierID)
}

type ledgerRow struct {
	typ string
}

func (lr *ledgerRow) targets(l *entity.PayableLedger) []any {
	return []any{&l.ID, &l.UserID, &l.SupplierID, &lr.typ, &l.AmountDelta, &l.Note, &l.RefMoveID, &l.CreatedAt}
}

func (lr *ledgerRow) fill(l *entity.PayableLedger) {
	l.Type = entity.LedgerType(lr.typ)
}

func scanLedgerDetail(row pgx.Row) (*entity.PayableLedgerDetail, error) {
	var (
		d                              entity.PayableLedgerDetail
		lr                             ledgerRow
		moveID, productID, productName *string
		moveQty, moveUnitPrice         *decimal.Decimal
	)
	targets := append(lr.targets(&d.PayableLedger), &d.Supplier.Name, &moveID, &productID, &productName, &moveQty, &moveUnitPrice)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	lr.fill(&d.PayableLedger)
	d.Supplier.ID = d.SupplierID
	if moveID != nil {
		ref := &entity.RefMoveSummary{ID: *moveID, UnitPrice: moveUnitPrice}
		if productID != nil {
			ref.ProductID = *productID
		}
		if productName != nil {
			ref.ProductName = *productName
		}
		if moveQty != nil {
			ref.QtyDelta = *moveQty
		}
		d.RefMove = ref
	}
	return &d, nil
}
