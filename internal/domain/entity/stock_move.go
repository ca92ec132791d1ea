package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveReason motivo de un movimiento de stock.
type MoveReason string

const (
	MoveReasonIn     MoveReason = "IN"     // entrada (compra)
	MoveReasonOut    MoveReason = "OUT"    // salida (venta)
	MoveReasonAdjust MoveReason = "ADJUST" // ajuste (merma, conteo)
)

// Valid indica si el motivo es uno de los soportados.
func (r MoveReason) Valid() bool {
	switch r {
	case MoveReasonIn, MoveReasonOut, MoveReasonAdjust:
		return true
	}
	return false
}

// PayType forma de pago de una entrada.
type PayType string

const (
	PayTypeCash   PayType = "CASH"
	PayTypeCredit PayType = "CREDIT"
)

// Valid indica si la forma de pago es una de las soportadas.
func (p PayType) Valid() bool {
	return p == PayTypeCash || p == PayTypeCredit
}

// StockMove es un cambio de cantidad de un producto. Inmutable: solo se inserta.
// QtyDelta lleva el signo ya derivado del Reason.
type StockMove struct {
	ID          string
	UserID      string
	ProductID   string
	WarehouseID *string
	QtyDelta    decimal.Decimal
	Reason      MoveReason
	SupplierID  *string
	CustomerID  *string
	UnitPrice   *decimal.Decimal
	PayType     *PayType
	Note        *string
	CreatedAt   time.Time
}

// ProductSummary resumen de producto incluido en lecturas de movimientos.
type ProductSummary struct {
	ID       string
	Name     string
	UnitCode string
}

// PartySummary resumen de proveedor o cliente.
type PartySummary struct {
	ID   string
	Name string
}

// StockMoveDetail movimiento con los resúmenes de las entidades referenciadas.
type StockMoveDetail struct {
	StockMove
	Product  ProductSummary
	Supplier *PartySummary
	Customer *PartySummary
}
