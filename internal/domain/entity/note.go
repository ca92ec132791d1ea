package entity

import "strings"

// NormalizeNote recorta la nota de un movimiento o asiento; una nota vacía se guarda como NULL.
func NormalizeNote(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
