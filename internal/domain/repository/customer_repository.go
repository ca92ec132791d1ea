package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, userID, id string) (*entity.Customer, error)
	GetByName(ctx context.Context, userID, name string) (*entity.Customer, error)
	ListByUser(ctx context.Context, userID string, filter PartyFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, userID, id string) error
}
