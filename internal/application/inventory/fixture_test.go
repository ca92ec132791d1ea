package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

// fixture datos base de un usuario sobre una base SQLite en memoria.
type fixture struct {
	store     *sqlite.Store
	userID    string
	product   *entity.Product
	supplier  *entity.Supplier
	customer  *entity.Customer
	warehouse *entity.Warehouse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{store: store}
	f.userID = f.addUser(t, "ana@example.com")
	f.product, f.supplier, f.customer, f.warehouse = f.seed(t, f.userID)
	return f
}

func (f *fixture) addUser(t *testing.T, email string) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.New().String(), Email: email, DisplayName: email, PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewUserRepository(f.store.DB()).Create(context.Background(), u))
	return u.ID
}

func (f *fixture) seed(t *testing.T, userID string) (*entity.Product, *entity.Supplier, *entity.Customer, *entity.Warehouse) {
	t.Helper()
	ctx := context.Background()
	db := f.store.DB()
	now := time.Now().UTC()

	p := &entity.Product{ID: uuid.New().String(), UserID: userID, Name: "Tornillo", UnitCode: entity.DefaultUnitCode, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, p))
	s := &entity.Supplier{ID: uuid.New().String(), UserID: userID, Name: "Ferretería Central", AllowDebt: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewSupplierRepository(db).Create(ctx, s))
	c := &entity.Customer{ID: uuid.New().String(), UserID: userID, Name: "Cliente Uno", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewCustomerRepository(db).Create(ctx, c))
	w := &entity.Warehouse{ID: uuid.New().String(), UserID: userID, Code: "PRINCIPAL", Name: "Principal", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewWarehouseRepository(db).Create(ctx, w))
	return p, s, c, w
}

func (f *fixture) useCase(runner inventory.TxRunner) *inventory.StockMoveUseCase {
	db := f.store.DB()
	if runner == nil {
		runner = sqlite.NewTxRunner(f.store)
	}
	return inventory.NewStockMoveUseCase(
		runner,
		sqlite.NewStockMoveRepository(db),
		sqlite.NewProductRepository(db),
		sqlite.NewSupplierRepository(db),
		sqlite.NewCustomerRepository(db),
		sqlite.NewWarehouseRepository(db),
		zerolog.Nop(),
	)
}

func ptr[T any](v T) *T { return &v }
