package entity

import "time"

// Customer representa un cliente (destino de las salidas OUT).
type Customer struct {
	ID        string
	UserID    string
	Name      string // único por usuario
	Phone     *string
	Email     *string
	Address   *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
