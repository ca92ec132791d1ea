package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveQtyDelta(t *testing.T) {
	tests := []struct {
		name      string
		magnitude string
		reason    entity.MoveReason
		want      string
	}{
		{name: "IN positivo", magnitude: "10", reason: entity.MoveReasonIn, want: "10"},
		{name: "OUT negativo", magnitude: "3", reason: entity.MoveReasonOut, want: "-3"},
		{name: "ADJUST negativo", magnitude: "1", reason: entity.MoveReasonAdjust, want: "-1"},
		{name: "fracción", magnitude: "0.001", reason: entity.MoveReasonOut, want: "-0.001"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ledger.DeriveQtyDelta(dec(tt.magnitude), tt.reason)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDeriveQtyDelta_RejectsNonPositive(t *testing.T) {
	for _, m := range []string{"0", "-5"} {
		_, err := ledger.DeriveQtyDelta(dec(m), entity.MoveReasonIn)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "magnitud %s", m)
	}
	_, err := ledger.DeriveQtyDelta(dec("1"), entity.MoveReason("TRANSFER"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeriveAmountDelta(t *testing.T) {
	tests := []struct {
		name      string
		magnitude string
		typ       entity.LedgerType
		want      string
	}{
		{name: "BILL positivo", magnitude: "50", typ: entity.LedgerTypeBill, want: "50"},
		{name: "PAYMENT negativo", magnitude: "20", typ: entity.LedgerTypePayment, want: "-20"},
		{name: "ADJUST negativo", magnitude: "7.5", typ: entity.LedgerTypeAdjust, want: "-7.5"},
		{name: "cero permitido", magnitude: "0", typ: entity.LedgerTypePayment, want: "0"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ledger.DeriveAmountDelta(dec(tt.magnitude), tt.typ)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDeriveAmountDelta_RejectsNegative(t *testing.T) {
	_, err := ledger.DeriveAmountDelta(dec("-1"), entity.LedgerTypeBill)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.DeriveAmountDelta(dec("1"), entity.LedgerType("REFUND"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsCreditBill(t *testing.T) {
	credit := entity.PayTypeCredit
	cash := entity.PayTypeCash
	price := dec("10")

	assert.True(t, ledger.IsCreditBill(entity.MoveReasonIn, &credit, &price))
	assert.False(t, ledger.IsCreditBill(entity.MoveReasonIn, &cash, &price))
	assert.False(t, ledger.IsCreditBill(entity.MoveReasonIn, &credit, nil))
	assert.False(t, ledger.IsCreditBill(entity.MoveReasonIn, nil, &price))
	assert.False(t, ledger.IsCreditBill(entity.MoveReasonOut, &credit, &price))
}

func TestBillAmount(t *testing.T) {
	assert.True(t, dec("50").Equal(ledger.BillAmount(dec("5"), dec("10"))))
	assert.True(t, dec("50").Equal(ledger.BillAmount(dec("-5"), dec("10"))))
	assert.True(t, dec("3.75").Equal(ledger.BillAmount(dec("1.5"), dec("2.5"))))
}

func TestFold(t *testing.T) {
	assert.True(t, dec("6").Equal(ledger.Fold([]decimal.Decimal{dec("10"), dec("-3"), dec("-1")})))
	assert.True(t, dec("30").Equal(ledger.Fold([]decimal.Decimal{dec("50"), dec("-20")})))
	assert.True(t, decimal.Zero.Equal(ledger.Fold(nil)))
}
