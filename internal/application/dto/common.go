package dto

// Envelope cuerpo de toda respuesta exitosa.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// FieldError error de validación de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// DeleteResponse resultado de un borrado; SoftDeleted indica que solo se desactivó.
type DeleteResponse struct {
	ID          string `json:"id"`
	SoftDeleted bool   `json:"softDeleted"`
}

// PartySummary resumen de proveedor o cliente en respuestas anidadas.
type PartySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
