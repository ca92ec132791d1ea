package balance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/balance"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

func setup(t *testing.T) (*sqlite.Store, *balance.Aggregator, string, *entity.Product, *entity.Supplier) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	db := store.DB()
	now := time.Now().UTC()

	userID := uuid.New().String()
	require.NoError(t, sqlite.NewUserRepository(db).Create(ctx, &entity.User{ID: userID, Email: "ana@example.com", DisplayName: "Ana", PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	p := &entity.Product{ID: uuid.New().String(), UserID: userID, Name: "Arena", UnitCode: "kg", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, p))
	s := &entity.Supplier{ID: uuid.New().String(), UserID: userID, Name: "Canteras", AllowDebt: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewSupplierRepository(db).Create(ctx, s))

	agg := balance.NewAggregator(
		sqlite.NewProductRepository(db),
		sqlite.NewSupplierRepository(db),
		sqlite.NewStockMoveRepository(db),
		sqlite.NewPayableLedgerRepository(db),
	)
	return store, agg, userID, p, s
}

func TestCurrentStock(t *testing.T) {
	store, agg, userID, p, s := setup(t)
	ctx := context.Background()
	moves := sqlite.NewStockMoveRepository(store.DB())

	got, err := agg.CurrentStock(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.IsZero())
	assert.Equal(t, 0, got.TotalMoves)

	for i, delta := range []string{"10", "-3.5", "-0.25", "4"} {
		m := &entity.StockMove{
			ID: uuid.New().String(), UserID: userID, ProductID: p.ID,
			QtyDelta: decimal.RequireFromString(delta), Reason: entity.MoveReasonAdjust,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Millisecond),
		}
		if m.QtyDelta.IsPositive() {
			m.Reason = entity.MoveReasonIn
			m.SupplierID = &s.ID
		}
		require.NoError(t, moves.Create(ctx, m))
	}

	got, err = agg.CurrentStock(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.25").Equal(got.CurrentStock), "stock=%s", got.CurrentStock)
	assert.Equal(t, 4, got.TotalMoves)
	assert.Equal(t, p.ID, got.ProductID)

	_, err = agg.CurrentStock(ctx, uuid.New().String(), p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntityProduct, domain.EntityOf(err))
}

func TestPayableBalance(t *testing.T) {
	store, agg, userID, _, s := setup(t)
	ctx := context.Background()
	ledgers := sqlite.NewPayableLedgerRepository(store.DB())

	for _, l := range []struct {
		typ   entity.LedgerType
		delta string
	}{
		{entity.LedgerTypeBill, "120"},
		{entity.LedgerTypePayment, "-100"},
		{entity.LedgerTypeAdjust, "-30"},
	} {
		require.NoError(t, ledgers.Create(ctx, &entity.PayableLedger{
			ID: uuid.New().String(), UserID: userID, SupplierID: s.ID,
			Type: l.typ, AmountDelta: decimal.RequireFromString(l.delta), CreatedAt: time.Now().UTC(),
		}))
	}

	got, err := agg.PayableBalance(ctx, userID, s.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-10").Equal(got.Balance), "un saldo negativo es crédito a favor")
	assert.Equal(t, 3, got.TotalLedgers)

	_, err = agg.PayableBalance(ctx, userID, uuid.New().String())
	assert.Equal(t, domain.EntitySupplier, domain.EntityOf(err))
}
