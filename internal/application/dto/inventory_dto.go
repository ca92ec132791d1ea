package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockMoveRequest body para POST /api/stock-moves.
// QtyDelta es la magnitud (siempre positiva); el signo lo deriva el servidor según Reason.
type CreateStockMoveRequest struct {
	ProductID   string           `json:"productId" validate:"required,uuid"`
	WarehouseID *string          `json:"warehouseId" validate:"omitempty,uuid"`
	QtyDelta    decimal.Decimal  `json:"qtyDelta" validate:"required,gt=0"`
	Reason      string           `json:"reason" validate:"required,oneof=IN OUT ADJUST"`
	SupplierID  *string          `json:"supplierId" validate:"omitempty,uuid"`
	CustomerID  *string          `json:"customerId" validate:"omitempty,uuid"`
	UnitPrice   *decimal.Decimal `json:"unitPrice" validate:"omitempty,gte=0"`
	PayType     *string          `json:"payType" validate:"omitempty,oneof=CASH CREDIT"`
	Note        *string          `json:"note" validate:"omitempty,max=500"`
}

// StockMoveQuery filtros de GET /api/stock-moves.
type StockMoveQuery struct {
	ProductID   string `query:"productId" validate:"omitempty,uuid"`
	SupplierID  string `query:"supplierId" validate:"omitempty,uuid"`
	CustomerID  string `query:"customerId" validate:"omitempty,uuid"`
	WarehouseID string `query:"warehouseId" validate:"omitempty,uuid"`
	Reason      string `query:"reason" validate:"omitempty,oneof=IN OUT ADJUST"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
}

// ProductSummary resumen de producto anidado en un movimiento.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UnitCode string `json:"unitCode"`
}

// StockMoveResponse salida de un movimiento con sus referencias.
type StockMoveResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"productId"`
	WarehouseID *string          `json:"warehouseId,omitempty"`
	QtyDelta    decimal.Decimal  `json:"qtyDelta"`
	Reason      string           `json:"reason"`
	SupplierID  *string          `json:"supplierId,omitempty"`
	CustomerID  *string          `json:"customerId,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	PayType     *string          `json:"payType,omitempty"`
	Note        *string          `json:"note,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	Product     ProductSummary   `json:"product"`
	Supplier    *PartySummary    `json:"supplier,omitempty"`
	Customer    *PartySummary    `json:"customer,omitempty"`
}

// StockResponse stock actual de un producto calculado desde su historial.
type StockResponse struct {
	ProductID    string          `json:"productId"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	TotalMoves   int             `json:"totalMoves"`
}
