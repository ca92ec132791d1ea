package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, userID, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, userID, name string) (*entity.Supplier, error)
	ListByUser(ctx context.Context, userID string, filter PartyFilter) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, userID, id string) error
}
