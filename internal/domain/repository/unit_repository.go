package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para Unit.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, userID, id string) (*entity.Unit, error)
	GetByCode(ctx context.Context, userID, code string) (*entity.Unit, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, userID, id string) error
}
