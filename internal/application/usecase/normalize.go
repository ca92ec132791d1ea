package usecase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeCode recorta y pasa a mayúsculas los códigos de bodega, unidad y categoría.
// cases.Caser guarda estado, así que se crea uno por llamada.
func normalizeCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// trimmed devuelve nil si el texto queda vacío tras recortar espacios.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func lowerEmail(s *string) *string {
	t := trimmed(s)
	if t == nil {
		return nil
	}
	l := cases.Lower(language.Und).String(*t)
	return &l
}
