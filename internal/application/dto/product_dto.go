package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	UnitCode   string           `json:"unitCode" validate:"omitempty,max=20"`
	CategoryID *string          `json:"categoryId" validate:"omitempty,uuid"`
	CostPrice  *decimal.Decimal `json:"costPrice" validate:"omitempty,gte=0"`
	SalePrice  *decimal.Decimal `json:"salePrice" validate:"omitempty,gte=0"`
	IsActive   *bool            `json:"isActive"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitCode   *string          `json:"unitCode" validate:"omitempty,min=1,max=20"`
	CategoryID *string          `json:"categoryId" validate:"omitempty,uuid"`
	CostPrice  *decimal.Decimal `json:"costPrice" validate:"omitempty,gte=0"`
	SalePrice  *decimal.Decimal `json:"salePrice" validate:"omitempty,gte=0"`
	IsActive   *bool            `json:"isActive"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	UnitCode   string           `json:"unitCode"`
	CategoryID *string          `json:"categoryId,omitempty"`
	CostPrice  *decimal.Decimal `json:"costPrice,omitempty"`
	SalePrice  *decimal.Decimal `json:"salePrice,omitempty"`
	IsActive   bool             `json:"isActive"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// ListQuery filtro ?active=true|false de los listados de productos, proveedores y clientes.
type ListQuery struct {
	Active string `query:"active" validate:"omitempty,oneof=true false"`
}
