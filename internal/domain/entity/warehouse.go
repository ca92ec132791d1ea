package entity

import "time"

// Warehouse representa una bodega donde se registran movimientos.
type Warehouse struct {
	ID        string
	UserID    string
	Code      string // en mayúsculas, único por usuario
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
