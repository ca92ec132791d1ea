package repository

import (
	"time"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// PartyFilter filtro de listados de productos, proveedores y clientes.
type PartyFilter struct {
	Active *bool // nil = todos
}

// MoveFilter filtros opcionales para listar movimientos de un usuario.
type MoveFilter struct {
	ProductID   string
	SupplierID  string
	CustomerID  string
	WarehouseID string
	Reason      entity.MoveReason
	From        *time.Time
	To          *time.Time
}

// LedgerFilter filtros opcionales para listar asientos de cuentas por pagar.
type LedgerFilter struct {
	SupplierID string
	Type       entity.LedgerType
	From       *time.Time
	To         *time.Time
}
