package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecord_DerivesSignFromReason(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		input  inventory.MoveInput
		expect string
	}{
		{"IN suma", inventory.MoveInput{ProductID: f.product.ID, Qty: dec("5"), Reason: entity.MoveReasonIn, SupplierID: &f.supplier.ID}, "5"},
		{"OUT resta", inventory.MoveInput{ProductID: f.product.ID, Qty: dec("2"), Reason: entity.MoveReasonOut, CustomerID: &f.customer.ID}, "-2"},
		{"ADJUST resta", inventory.MoveInput{ProductID: f.product.ID, Qty: dec("0.5"), Reason: entity.MoveReasonAdjust}, "-0.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := uc.Record(ctx, f.userID, tc.input)
			require.NoError(t, err)
			assert.True(t, dec(tc.expect).Equal(d.QtyDelta), "qtyDelta=%s", d.QtyDelta)
			assert.Equal(t, tc.input.Reason, d.Reason)
			assert.Equal(t, f.product.Name, d.Product.Name)
			assert.Equal(t, entity.DefaultUnitCode, d.Product.UnitCode)
		})
	}
}

func TestRecord_ChecksInOrder(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-000000000000"
	credit := entity.PayTypeCredit

	cases := []struct {
		name   string
		input  inventory.MoveInput
		entity string // "" => InvalidRequest
	}{
		{
			"producto inexistente gana sobre cualquier otra falla",
			inventory.MoveInput{ProductID: missing, Qty: decimal.Zero, Reason: entity.MoveReasonIn, SupplierID: &missing},
			domain.EntityProduct,
		},
		{
			"proveedor inexistente",
			inventory.MoveInput{ProductID: f.product.ID, Qty: decimal.Zero, Reason: entity.MoveReasonOut, SupplierID: &missing},
			domain.EntitySupplier,
		},
		{
			"cliente inexistente",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonIn, CustomerID: &missing},
			domain.EntityCustomer,
		},
		{
			"bodega inexistente",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonIn, WarehouseID: &missing},
			domain.EntityWarehouse,
		},
		{
			"IN sin proveedor",
			inventory.MoveInput{ProductID: f.product.ID, Qty: decimal.Zero, Reason: entity.MoveReasonIn},
			"",
		},
		{
			"OUT sin cliente",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonOut},
			"",
		},
		{
			"forma de pago en OUT",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonOut, CustomerID: &f.customer.ID, PayType: &credit},
			"",
		},
		{
			"crédito sin precio",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonIn, SupplierID: &f.supplier.ID, PayType: &credit},
			"",
		},
		{
			"crédito con precio cero",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonIn, SupplierID: &f.supplier.ID, PayType: &credit, UnitPrice: ptr(decimal.Zero)},
			"",
		},
		{
			"cantidad cero",
			inventory.MoveInput{ProductID: f.product.ID, Qty: decimal.Zero, Reason: entity.MoveReasonAdjust},
			"",
		},
		{
			"cantidad negativa",
			inventory.MoveInput{ProductID: f.product.ID, Qty: dec("-3"), Reason: entity.MoveReasonAdjust},
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Record(ctx, f.userID, tc.input)
			require.Error(t, err)
			if tc.entity != "" {
				assert.ErrorIs(t, err, domain.ErrNotFound)
				assert.Equal(t, tc.entity, domain.EntityOf(err))
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}

	moves, err := uc.List(ctx, f.userID, repository.MoveFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves, "ningún intento rechazado deja filas")
}

func TestRecord_CreditPurchaseWritesBill(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()
	credit := entity.PayTypeCredit

	d, err := uc.Record(ctx, f.userID, inventory.MoveInput{
		ProductID:  f.product.ID,
		Qty:        dec("4"),
		Reason:     entity.MoveReasonIn,
		SupplierID: &f.supplier.ID,
		UnitPrice:  ptr(dec("2.50")),
		PayType:    &credit,
	})
	require.NoError(t, err)
	require.NotNil(t, d.Supplier)
	assert.Equal(t, f.supplier.Name, d.Supplier.Name)

	bills, err := sqlite.NewPayableLedgerRepository(f.store.DB()).ListBySupplier(ctx, f.userID, f.supplier.ID)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	bill := bills[0]
	assert.Equal(t, entity.LedgerTypeBill, bill.Type)
	assert.True(t, dec("10").Equal(bill.AmountDelta), "amount=%s", bill.AmountDelta)
	require.NotNil(t, bill.RefMoveID)
	assert.Equal(t, d.ID, *bill.RefMoveID)
	require.NotNil(t, bill.Note)
	assert.Equal(t, "Factura de compra: Tornillo - Cant: 4", *bill.Note)
}

func TestRecord_CreditPurchaseBillUsesCallerNote(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()
	credit := entity.PayTypeCredit

	d, err := uc.RecordCreditPurchase(ctx, f.userID, inventory.MoveInput{
		ProductID:  f.product.ID,
		Qty:        dec("3"),
		Reason:     entity.MoveReasonIn,
		SupplierID: &f.supplier.ID,
		UnitPrice:  ptr(dec("1.5")),
		PayType:    &credit,
		Note:       ptr("  factura F-001  "),
	})
	require.NoError(t, err)
	require.NotNil(t, d.Note)
	assert.Equal(t, "factura F-001", *d.Note)

	bills, err := sqlite.NewPayableLedgerRepository(f.store.DB()).ListBySupplier(ctx, f.userID, f.supplier.ID)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "factura F-001", *bills[0].Note)
	assert.True(t, dec("4.5").Equal(bills[0].AmountDelta))
}

func TestRecord_CashPurchaseHasNoBill(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()
	cash := entity.PayTypeCash

	_, err := uc.Record(ctx, f.userID, inventory.MoveInput{
		ProductID: f.product.ID, Qty: dec("2"), Reason: entity.MoveReasonIn,
		SupplierID: &f.supplier.ID, UnitPrice: ptr(dec("9")), PayType: &cash,
		Note: ptr("   "),
	})
	require.NoError(t, err)

	bills, err := sqlite.NewPayableLedgerRepository(f.store.DB()).ListBySupplier(ctx, f.userID, f.supplier.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)

	moves, err := uc.List(ctx, f.userID, repository.MoveFilter{})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Nil(t, moves[0].Note, "una nota vacía se guarda como null")
}

func TestRecordCreditPurchase_RejectsNonCreditInput(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	cash := entity.PayTypeCash

	_, err := uc.RecordCreditPurchase(context.Background(), f.userID, inventory.MoveInput{
		ProductID: f.product.ID, Qty: dec("2"), Reason: entity.MoveReasonIn,
		SupplierID: &f.supplier.ID, UnitPrice: ptr(dec("9")), PayType: &cash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordCreditPurchase_ChecksReferencesFirst(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	otherProduct, otherSupplier, _, _ := f.seed(t, f.addUser(t, "luis@example.com"))

	// Entrada sin crédito sobre un producto ajeno: primero NotFound, no InvalidRequest.
	_, err := uc.RecordCreditPurchase(context.Background(), f.userID, inventory.MoveInput{
		ProductID: otherProduct.ID, Qty: dec("2"), Reason: entity.MoveReasonAdjust,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntityProduct, domain.EntityOf(err))

	credit := entity.PayTypeCredit
	_, err = uc.RecordCreditPurchase(context.Background(), f.userID, inventory.MoveInput{
		ProductID: f.product.ID, Qty: dec("2"), Reason: entity.MoveReasonIn,
		SupplierID: &otherSupplier.ID, UnitPrice: ptr(dec("9")), PayType: &credit,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntitySupplier, domain.EntityOf(err))

	moves, err := uc.List(context.Background(), f.userID, repository.MoveFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves)
}

// failingLedgerRunner envuelve el TxRunner real y reemplaza el repositorio de asientos por uno que falla.
type failingLedgerRunner struct {
	inner inventory.TxRunner
}

type failingLedgers struct {
	repository.PayableLedgerRepository
}

var errLedgerDown = errors.New("payable_ledgers no disponible")

func (failingLedgers) Create(context.Context, *entity.PayableLedger) error { return errLedgerDown }

func (r failingLedgerRunner) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos inventory.TxRepos) error {
		repos.Ledgers = failingLedgers{repos.Ledgers}
		return fn(repos)
	})
}

func TestRecord_LedgerFailureRollsBackMove(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(failingLedgerRunner{inner: sqlite.NewTxRunner(f.store)})
	ctx := context.Background()
	credit := entity.PayTypeCredit

	_, err := uc.Record(ctx, f.userID, inventory.MoveInput{
		ProductID: f.product.ID, Qty: dec("4"), Reason: entity.MoveReasonIn,
		SupplierID: &f.supplier.ID, UnitPrice: ptr(dec("2")), PayType: &credit,
	})
	require.ErrorIs(t, err, errLedgerDown)

	moves, err := sqlite.NewStockMoveRepository(f.store.DB()).ListByProduct(ctx, f.userID, f.product.ID)
	require.NoError(t, err)
	assert.Empty(t, moves, "el movimiento debe revertirse junto con la factura")

	bills, err := sqlite.NewPayableLedgerRepository(f.store.DB()).ListBySupplier(ctx, f.userID, f.supplier.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestStockMoves_AreIsolatedPerUser(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()

	otherUser := f.addUser(t, "beto@example.com")
	otherProduct, otherSupplier, _, _ := f.seed(t, otherUser)

	// Referencias de otro usuario se comportan como inexistentes.
	_, err := uc.Record(ctx, f.userID, inventory.MoveInput{ProductID: otherProduct.ID, Qty: dec("1"), Reason: entity.MoveReasonAdjust})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntityProduct, domain.EntityOf(err))

	_, err = uc.Record(ctx, f.userID, inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonIn, SupplierID: &otherSupplier.ID})
	assert.Equal(t, domain.EntitySupplier, domain.EntityOf(err))

	mine, err := uc.Record(ctx, f.userID, inventory.MoveInput{ProductID: f.product.ID, Qty: dec("1"), Reason: entity.MoveReasonAdjust})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, otherUser, mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.EntityStockMove, domain.EntityOf(err))

	theirs, err := uc.List(ctx, otherUser, repository.MoveFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestList_NewestFirstWithFilters(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(nil)
	ctx := context.Background()

	first, err := uc.Record(ctx, f.userID, inventory.MoveInput{ProductID: f.product.ID, Qty: dec("10"), Reason: entity.MoveReasonIn, SupplierID: &f.supplier.ID, WarehouseID: &f.warehouse.ID})
	require.NoError(t, err)
	second, err := uc.Record(ctx, f.userID, inventory.MoveInput{ProductID: f.product.ID, Qty: dec("3"), Reason: entity.MoveReasonOut, CustomerID: &f.customer.ID})
	require.NoError(t, err)

	all, err := uc.List(ctx, f.userID, repository.MoveFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	outs, err := uc.List(ctx, f.userID, repository.MoveFilter{Reason: entity.MoveReasonOut})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	require.NotNil(t, outs[0].Customer)
	assert.Equal(t, f.customer.Name, outs[0].Customer.Name)

	inWarehouse, err := uc.List(ctx, f.userID, repository.MoveFilter{WarehouseID: f.warehouse.ID})
	require.NoError(t, err)
	require.Len(t, inWarehouse, 1)
	assert.Equal(t, first.ID, inWarehouse[0].ID)

	got, err := uc.GetByID(ctx, f.userID, first.ID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(got.QtyDelta))
}
