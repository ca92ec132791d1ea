package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/validation"
)

func ptr[T any](v T) *T { return &v }

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field] = fe.Rule
	}
	return out
}

func TestStruct_StockMove(t *testing.T) {
	valid := dto.CreateStockMoveRequest{
		ProductID: "6f1c2a0e-6b7a-4a53-9d4e-0c8a2b1f3e55",
		QtyDelta:  decimal.NewFromInt(3),
		Reason:    "IN",
		UnitPrice: ptr(decimal.RequireFromString("2.50")),
		PayType:   ptr("CREDIT"),
	}
	assert.NoError(t, validation.Struct(valid))

	t.Run("cantidad cero", func(t *testing.T) {
		in := valid
		in.QtyDelta = decimal.Zero
		got := fields(t, validation.Struct(in))
		assert.Contains(t, got, "qtyDelta")
	})

	t.Run("cantidad negativa", func(t *testing.T) {
		in := valid
		in.QtyDelta = decimal.NewFromInt(-1)
		got := fields(t, validation.Struct(in))
		assert.Equal(t, "gt", got["qtyDelta"])
	})

	t.Run("motivo desconocido y producto vacío", func(t *testing.T) {
		in := valid
		in.Reason = "TRANSFER"
		in.ProductID = ""
		got := fields(t, validation.Struct(in))
		assert.Equal(t, "oneof", got["reason"])
		assert.Equal(t, "required", got["productId"])
	})

	t.Run("precio negativo", func(t *testing.T) {
		in := valid
		in.UnitPrice = ptr(decimal.NewFromInt(-5))
		got := fields(t, validation.Struct(in))
		assert.Equal(t, "gte", got["unitPrice"])
	})
}

func TestStruct_PayableLedgerAllowsZeroAmount(t *testing.T) {
	in := dto.CreatePayableLedgerRequest{
		SupplierID:  "6f1c2a0e-6b7a-4a53-9d4e-0c8a2b1f3e55",
		Type:        "ADJUST",
		AmountDelta: decimal.Zero,
	}
	assert.NoError(t, validation.Struct(in))

	in.AmountDelta = decimal.NewFromInt(-1)
	got := fields(t, validation.Struct(in))
	assert.Equal(t, "gte", got["amountDelta"])
}

func TestStruct_QueryTagNames(t *testing.T) {
	got := fields(t, validation.Struct(dto.StockMoveQuery{Reason: "SOLD"}))
	assert.Equal(t, "oneof", got["reason"])
}

func TestErrors_Message(t *testing.T) {
	err := validation.Struct(dto.LoginRequest{Email: "no-es-email", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: debe ser un email válido")
}
