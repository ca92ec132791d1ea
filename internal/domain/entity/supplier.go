package entity

import "time"

// Supplier representa un proveedor. Las cuentas por pagar se llevan en PayableLedger.
type Supplier struct {
	ID        string
	UserID    string
	Name      string // único por usuario
	Phone     *string
	Email     *string
	Address   *string
	AllowDebt bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
