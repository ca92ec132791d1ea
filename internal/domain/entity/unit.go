package entity

import "time"

// Unit unidad de medida (PCS, KG, LT...). Los productos la referencian por Code.
type Unit struct {
	ID        string
	UserID    string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
