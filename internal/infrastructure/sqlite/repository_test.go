package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func addUser(t *testing.T, store *sqlite.Store, email string) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.New().String(), Email: email, DisplayName: email, PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewUserRepository(store.DB()).Create(context.Background(), u))
	return u.ID
}

// El índice único es el árbitro final: un duplicado que llegue a la base se reporta como Conflict
// aunque el caso de uso no lo haya detectado antes.
func TestCreate_UniqueIndexIsConflict(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	cases := []struct {
		name   string
		entity string
		insert func(store *sqlite.Store, userID string) error
	}{
		{
			name:   "producto por nombre",
			entity: domain.EntityProduct,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewProductRepository(store.DB()).Create(ctx, &entity.Product{
					ID: uuid.New().String(), UserID: userID, Name: "Tornillo", UnitCode: entity.DefaultUnitCode,
					IsActive: true, CreatedAt: now, UpdatedAt: now,
				})
			},
		},
		{
			name:   "proveedor por nombre",
			entity: domain.EntitySupplier,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewSupplierRepository(store.DB()).Create(ctx, &entity.Supplier{
					ID: uuid.New().String(), UserID: userID, Name: "Acme", AllowDebt: true,
					IsActive: true, CreatedAt: now, UpdatedAt: now,
				})
			},
		},
		{
			name:   "cliente por nombre",
			entity: domain.EntityCustomer,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewCustomerRepository(store.DB()).Create(ctx, &entity.Customer{
					ID: uuid.New().String(), UserID: userID, Name: "Cliente Uno",
					IsActive: true, CreatedAt: now, UpdatedAt: now,
				})
			},
		},
		{
			name:   "unidad por código",
			entity: domain.EntityUnit,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewUnitRepository(store.DB()).Create(ctx, &entity.Unit{
					ID: uuid.New().String(), UserID: userID, Code: "KG", Name: "Kilogramo", CreatedAt: now, UpdatedAt: now,
				})
			},
		},
		{
			name:   "bodega por código",
			entity: domain.EntityWarehouse,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewWarehouseRepository(store.DB()).Create(ctx, &entity.Warehouse{
					ID: uuid.New().String(), UserID: userID, Code: "PRINCIPAL", Name: "Principal", CreatedAt: now, UpdatedAt: now,
				})
			},
		},
		{
			name:   "categoría por código",
			entity: domain.EntityCategory,
			insert: func(store *sqlite.Store, userID string) error {
				return sqlite.NewCategoryRepository(store.DB()).Create(ctx, &entity.Category{
					ID: uuid.New().String(), UserID: userID, Code: "FERR", Name: "Ferretería", CreatedAt: now, UpdatedAt: now,
				})
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			ana := addUser(t, store, "ana@example.com")
			luis := addUser(t, store, "luis@example.com")

			require.NoError(t, tc.insert(store, ana))

			err := tc.insert(store, ana)
			require.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, tc.entity, domain.EntityOf(err))

			// La unicidad es por usuario.
			assert.NoError(t, tc.insert(store, luis))
		})
	}
}

func TestUserRepo_EmailUnique(t *testing.T) {
	store := newStore(t)
	addUser(t, store, "ana@example.com")

	now := time.Now().UTC()
	err := sqlite.NewUserRepository(store.DB()).Create(context.Background(), &entity.User{
		ID: uuid.New().String(), Email: "ana@example.com", DisplayName: "Otra", PasswordHash: "x",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.EntityUser, domain.EntityOf(err))
}

func TestPayableLedgerRepo_ExistsForSupplier(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	userID := addUser(t, store, "ana@example.com")
	now := time.Now().UTC()

	s := &entity.Supplier{ID: uuid.New().String(), UserID: userID, Name: "Acme", AllowDebt: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewSupplierRepository(store.DB()).Create(ctx, s))

	ledgers := sqlite.NewPayableLedgerRepository(store.DB())
	found, err := ledgers.ExistsForSupplier(ctx, userID, s.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, ledgers.Create(ctx, &entity.PayableLedger{
		ID: uuid.New().String(), UserID: userID, SupplierID: s.ID,
		Type: entity.LedgerTypeAdjust, AmountDelta: decimal.NewFromInt(-100), CreatedAt: now,
	}))
	found, err = ledgers.ExistsForSupplier(ctx, userID, s.ID)
	require.NoError(t, err)
	assert.True(t, found)

	otherUser := addUser(t, store, "luis@example.com")
	found, err = ledgers.ExistsForSupplier(ctx, otherUser, s.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
