package entity

import "time"

// User representa una cuenta del sistema. Todo lo demás pertenece a exactamente un User.
type User struct {
	ID           string
	Email        string // normalizado: minúsculas, sin espacios
	DisplayName  string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
