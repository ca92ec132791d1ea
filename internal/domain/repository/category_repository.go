package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, userID, id string) (*entity.Category, error)
	GetByCode(ctx context.Context, userID, code string) (*entity.Category, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, userID, id string) error
	HasChildren(ctx context.Context, userID, id string) (bool, error)
}
