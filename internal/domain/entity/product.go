package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitCode unidad usada cuando el producto no indica una.
const DefaultUnitCode = "pcs"

// Product representa un producto del inventario de un usuario.
// El stock no se guarda aquí: siempre se calcula sumando los StockMove.
type Product struct {
	ID         string
	UserID     string
	Name       string // único por usuario
	UnitCode   string
	CategoryID *string
	CostPrice  *decimal.Decimal
	SalePrice  *decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
