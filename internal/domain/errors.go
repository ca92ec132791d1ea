package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Entidades referenciadas en los errores tipados.
const (
	EntityUser          = "user"
	EntityProduct       = "product"
	EntitySupplier      = "supplier"
	EntityCustomer      = "customer"
	EntityWarehouse     = "warehouse"
	EntityUnit          = "unit"
	EntityCategory      = "category"
	EntityStockMove     = "stock_move"
	EntityPayableLedger = "payable_ledger"
)

// NotFoundError indica que la entidad no existe o no pertenece al usuario que la pide.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado", e.Entity)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidRequestError indica que una regla de negocio rechazó la petición.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidInput }

// ConflictError indica una violación de unicidad (o de referencia) detectada por el store.
type ConflictError struct {
	Entity string
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Detail)
	}
	return fmt.Sprintf("%s duplicado", e.Entity)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFound construye un *NotFoundError.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// Invalid construye un *InvalidRequestError.
func Invalid(reason string) error {
	return &InvalidRequestError{Reason: reason}
}

// Conflict construye un *ConflictError sin detalle (unicidad).
func Conflict(entity string) error {
	return &ConflictError{Entity: entity}
}

// ConflictWith construye un *ConflictError con detalle (p. ej. referencias vivas).
func ConflictWith(entity, detail string) error {
	return &ConflictError{Entity: entity, Detail: detail}
}

// EntityOf devuelve la entidad asociada a un error tipado, o "" si no la tiene.
func EntityOf(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity
	}
	var cf *ConflictError
	if errors.As(err, &cf) {
		return cf.Entity
	}
	return ""
}
