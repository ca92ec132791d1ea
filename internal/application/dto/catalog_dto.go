package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code    string  `json:"code" validate:"required,min=1,max=20"`
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Code    *string `json:"code" validate:"omitempty,min=1,max=20"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUnitRequest entrada para crear una unidad de medida.
type CreateUnitRequest struct {
	Code string `json:"code" validate:"required,min=1,max=20"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateUnitRequest entrada para actualizar una unidad.
type UpdateUnitRequest struct {
	Code *string `json:"code" validate:"omitempty,min=1,max=20"`
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Code     string  `json:"code" validate:"required,min=1,max=20"`
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

// UpdateCategoryRequest entrada para actualizar una categoría. ParentID "" la vuelve raíz.
type UpdateCategoryRequest struct {
	Code     *string `json:"code" validate:"omitempty,min=1,max=20"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
