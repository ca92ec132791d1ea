package payable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

type stubGenerator struct {
	got *payable.Statement
	err error
}

func (g *stubGenerator) GenerateStatementPDF(_ context.Context, st *payable.Statement) ([]byte, error) {
	g.got = st
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4"), nil
}

type env struct {
	store     *sqlite.Store
	uc        *payable.LedgerUseCase
	gen       *stubGenerator
	userID    string
	supplier  *entity.Supplier
	other     *entity.Supplier
	productID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	db := store.DB()
	now := time.Now().UTC()
	e := &env{store: store, gen: &stubGenerator{}}

	e.userID = uuid.New().String()
	require.NoError(t, sqlite.NewUserRepository(db).Create(ctx, &entity.User{ID: e.userID, Email: "ana@example.com", DisplayName: "Ana", PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	suppliers := sqlite.NewSupplierRepository(db)
	e.supplier = &entity.Supplier{ID: uuid.New().String(), UserID: e.userID, Name: "Acme", AllowDebt: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, suppliers.Create(ctx, e.supplier))
	e.other = &entity.Supplier{ID: uuid.New().String(), UserID: e.userID, Name: "Otro", AllowDebt: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, suppliers.Create(ctx, e.other))

	e.productID = uuid.New().String()
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, &entity.Product{ID: e.productID, UserID: e.userID, Name: "Cemento", UnitCode: "bulto", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	e.uc = payable.NewLedgerUseCase(
		sqlite.NewPayableLedgerRepository(db),
		suppliers,
		sqlite.NewStockMoveRepository(db),
		e.gen,
		zerolog.Nop(),
	)
	return e
}

func (e *env) addPurchase(t *testing.T, supplierID string) string {
	t.Helper()
	price := decimal.RequireFromString("7")
	m := &entity.StockMove{
		ID: uuid.New().String(), UserID: e.userID, ProductID: e.productID,
		QtyDelta: decimal.RequireFromString("2"), Reason: entity.MoveReasonIn,
		SupplierID: &supplierID, UnitPrice: &price, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, sqlite.NewStockMoveRepository(e.store.DB()).Create(context.Background(), m))
	return m.ID
}

func TestRecord_DerivesSignFromType(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		typ    entity.LedgerType
		amount string
		expect string
	}{
		{entity.LedgerTypeBill, "100", "100"},
		{entity.LedgerTypePayment, "30", "-30"},
		{entity.LedgerTypeAdjust, "5.25", "-5.25"},
		{entity.LedgerTypePayment, "0", "0"},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ)+"_"+tc.amount, func(t *testing.T) {
			d, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{
				SupplierID: e.supplier.ID,
				Type:       tc.typ,
				Amount:     decimal.RequireFromString(tc.amount),
			})
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expect).Equal(d.AmountDelta), "amountDelta=%s", d.AmountDelta)
			assert.Equal(t, "Acme", d.Supplier.Name)
			assert.Nil(t, d.RefMove)
		})
	}
}

func TestRecord_RejectsNegativeAmountAndUnknownType(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill, Amount: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Record(ctx, e.userID, payable.LedgerInput{SupplierID: e.supplier.ID, Type: "REFUND", Amount: decimal.RequireFromString("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_SupplierMustBeOwned(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Record(context.Background(), uuid.New().String(), payable.LedgerInput{
		SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill, Amount: decimal.RequireFromString("1"),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntitySupplier, domain.EntityOf(err))
}

func TestRecord_RefMove(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	moveID := e.addPurchase(t, e.supplier.ID)

	d, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{
		SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill,
		Amount: decimal.RequireFromString("14"), RefMoveID: &moveID, Note: ptr("  compra  "),
	})
	require.NoError(t, err)
	require.NotNil(t, d.RefMove)
	assert.Equal(t, moveID, d.RefMove.ID)
	assert.Equal(t, "Cemento", d.RefMove.ProductName)
	require.NotNil(t, d.Note)
	assert.Equal(t, "compra", *d.Note)

	t.Run("movimiento de otro proveedor", func(t *testing.T) {
		_, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{
			SupplierID: e.other.ID, Type: entity.LedgerTypeBill,
			Amount: decimal.RequireFromString("14"), RefMoveID: &moveID,
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, domain.EntityStockMove, domain.EntityOf(err))
	})

	t.Run("movimiento inexistente", func(t *testing.T) {
		missing := uuid.New().String()
		_, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{
			SupplierID: e.supplier.ID, Type: entity.LedgerTypePayment,
			Amount: decimal.RequireFromString("1"), RefMoveID: &missing,
		})
		assert.Equal(t, domain.EntityStockMove, domain.EntityOf(err))
	})
}

func TestList_FiltersByTypeNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, in := range []payable.LedgerInput{
		{SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill, Amount: decimal.RequireFromString("50")},
		{SupplierID: e.supplier.ID, Type: entity.LedgerTypePayment, Amount: decimal.RequireFromString("20")},
		{SupplierID: e.other.ID, Type: entity.LedgerTypeBill, Amount: decimal.RequireFromString("10")},
	} {
		_, err := e.uc.Record(ctx, e.userID, in)
		require.NoError(t, err)
	}

	all, err := e.uc.List(ctx, e.userID, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, e.other.ID, all[0].SupplierID)

	bills, err := e.uc.List(ctx, e.userID, repository.LedgerFilter{SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill})
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.True(t, decimal.RequireFromString("50").Equal(bills[0].AmountDelta))

	history, err := e.uc.ListBySupplier(ctx, e.userID, e.supplier.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.LedgerTypeBill, history[0].Type, "el historial va del más antiguo al más reciente")
}

func TestStatement(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.uc.Record(ctx, e.userID, payable.LedgerInput{SupplierID: e.supplier.ID, Type: entity.LedgerTypeBill, Amount: decimal.RequireFromString("80")})
	require.NoError(t, err)
	_, err = e.uc.Record(ctx, e.userID, payable.LedgerInput{SupplierID: e.supplier.ID, Type: entity.LedgerTypePayment, Amount: decimal.RequireFromString("30")})
	require.NoError(t, err)

	pdf, filename, err := e.uc.Statement(ctx, e.userID, e.supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Regexp(t, `^estado_cuenta_[0-9a-f-]{8}_\d{8}\.pdf$`, filename)
	require.NotNil(t, e.gen.got)
	assert.Equal(t, "Acme", e.gen.got.Supplier.Name)
	assert.Len(t, e.gen.got.Entries, 2)
	assert.True(t, decimal.RequireFromString("50").Equal(e.gen.got.Balance))

	e.gen.err = errors.New("fuente no disponible")
	_, _, err = e.uc.Statement(ctx, e.userID, e.supplier.ID)
	assert.ErrorContains(t, err, "fuente no disponible")

	_, _, err = e.uc.Statement(ctx, e.userID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
