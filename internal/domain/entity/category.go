package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional).
type Category struct {
	ID        string
	UserID    string
	ParentID  *string // nil si es raíz
	Code      string  // código único por usuario
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
