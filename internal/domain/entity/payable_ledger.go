package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerType tipo de asiento de cuentas por pagar.
type LedgerType string

const (
	LedgerTypeBill    LedgerType = "BILL"    // factura del proveedor: aumenta la deuda
	LedgerTypePayment LedgerType = "PAYMENT" // pago: disminuye la deuda
	LedgerTypeAdjust  LedgerType = "ADJUST"  // nota crédito / ajuste: disminuye la deuda
)

// Valid indica si el tipo es uno de los soportados.
func (t LedgerType) Valid() bool {
	switch t {
	case LedgerTypeBill, LedgerTypePayment, LedgerTypeAdjust:
		return true
	}
	return false
}

// PayableLedger asiento inmutable de la cuenta por pagar a un proveedor.
// AmountDelta lleva el signo ya derivado del Type.
type PayableLedger struct {
	ID          string
	UserID      string
	SupplierID  string
	Type        LedgerType
	AmountDelta decimal.Decimal
	Note        *string
	RefMoveID   *string
	CreatedAt   time.Time
}

// RefMoveSummary resumen del movimiento que originó el asiento.
type RefMoveSummary struct {
	ID          string
	ProductID   string
	ProductName string
	QtyDelta    decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// PayableLedgerDetail asiento con proveedor y movimiento de origen.
type PayableLedgerDetail struct {
	PayableLedger
	Supplier PartySummary
	RefMove  *RefMoveSummary
}
