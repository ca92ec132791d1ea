package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePayableLedgerRequest body para POST /api/payable-ledgers.
// AmountDelta es la magnitud (no negativa); el signo lo deriva el servidor según Type.
type CreatePayableLedgerRequest struct {
	SupplierID  string          `json:"supplierId" validate:"required,uuid"`
	Type        string          `json:"type" validate:"required,oneof=BILL PAYMENT ADJUST"`
	AmountDelta decimal.Decimal `json:"amountDelta" validate:"gte=0"`
	Note        *string         `json:"note" validate:"omitempty,max=500"`
	RefMoveID   *string         `json:"refMoveId" validate:"omitempty,uuid"`
}

// PayableLedgerQuery filtros de GET /api/payable-ledgers.
type PayableLedgerQuery struct {
	SupplierID string `query:"supplierId" validate:"omitempty,uuid"`
	Type       string `query:"type" validate:"omitempty,oneof=BILL PAYMENT ADJUST"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// RefMoveSummary resumen del movimiento que originó un asiento.
type RefMoveSummary struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"productId"`
	ProductName string           `json:"productName"`
	QtyDelta    decimal.Decimal  `json:"qtyDelta"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
}

// PayableLedgerResponse salida de un asiento de cuentas por pagar.
type PayableLedgerResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplierId"`
	Type        string          `json:"type"`
	AmountDelta decimal.Decimal `json:"amountDelta"`
	Note        *string         `json:"note,omitempty"`
	RefMoveID   *string         `json:"refMoveId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Supplier    PartySummary    `json:"supplier"`
	RefMove     *RefMoveSummary `json:"refMove,omitempty"`
}

// PayableBalanceResponse saldo por pagar a un proveedor calculado desde su historial.
type PayableBalanceResponse struct {
	SupplierID   string          `json:"supplierId"`
	Balance      decimal.Decimal `json:"balance"`
	TotalLedgers int             `json:"totalLedgers"`
}
