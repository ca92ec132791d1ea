package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, userID, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, userID, code string) (*entity.Warehouse, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, userID, id string) error
}
