package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Todas las lecturas filtran por userID; un producto ajeno se comporta como inexistente (nil, nil).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	GetByName(ctx context.Context, userID, name string) (*entity.Product, error)
	ListByUser(ctx context.Context, userID string, filter PartyFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, userID, id string) error
	ExistsWithUnit(ctx context.Context, userID, unitCode string) (bool, error)
	ExistsWithCategory(ctx context.Context, userID, categoryID string) (bool, error)
}
