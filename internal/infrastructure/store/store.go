// Package store abre la persistencia configurada en DB_DRIVER y expone sus repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockledger/pkg/config"
)

// Repos repositorios del driver elegido. Close libera la conexión.
type Repos struct {
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Suppliers  repository.SupplierRepository
	Customers  repository.CustomerRepository
	Warehouses repository.WarehouseRepository
	Units      repository.UnitRepository
	Categories repository.CategoryRepository
	Moves      repository.StockMoveRepository
	Ledgers    repository.PayableLedgerRepository
	TxRunner   inventory.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping comprueba que la base responde.
func (r *Repos) Ping(ctx context.Context) error { return r.ping(ctx) }

// Close cierra el pool o la base SQLite.
func (r *Repos) Close() { r.close() }

// Open abre PostgreSQL (aplicando el esquema si AutoMigrate) o SQLite según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Repos, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("store SQLite listo")
		db := store.DB()
		return &Repos{
			Users:      sqlite.NewUserRepository(db),
			Products:   sqlite.NewProductRepository(db),
			Suppliers:  sqlite.NewSupplierRepository(db),
			Customers:  sqlite.NewCustomerRepository(db),
			Warehouses: sqlite.NewWarehouseRepository(db),
			Units:      sqlite.NewUnitRepository(db),
			Categories: sqlite.NewCategoryRepository(db),
			Moves:      sqlite.NewStockMoveRepository(db),
			Ledgers:    sqlite.NewPayableLedgerRepository(db),
			TxRunner:   sqlite.NewTxRunner(store),
			ping:       store.Ping,
			close:      func() { _ = store.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrar esquema: %w", err)
			}
			log.Info().Msg("esquema PostgreSQL aplicado")
		}
		return &Repos{
			Users:      postgres.NewUserRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Suppliers:  postgres.NewSupplierRepository(pool),
			Customers:  postgres.NewCustomerRepository(pool),
			Warehouses: postgres.NewWarehouseRepository(pool),
			Units:      postgres.NewUnitRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Moves:      postgres.NewStockMoveRepository(pool),
			Ledgers:    postgres.NewPayableLedgerRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
}
