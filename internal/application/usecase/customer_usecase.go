package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	moves repository.StockMoveRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, moves repository.StockMoveRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, moves: moves}
}

func (uc *CustomerUseCase) Create(ctx context.Context, userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(domain.EntityCustomer)
	}
	now := time.Now().UTC()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Phone:     trimmed(in.Phone),
		Email:     lowerEmail(in.Email),
		Address:   trimmed(in.Address),
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCustomer(c)
	return &out, nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromCustomer(c)
	return &out, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("el nombre es obligatorio")
		}
		if name != c.Name {
			existing, err := uc.repo.GetByName(ctx, userID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != c.ID {
				return nil, domain.Conflict(domain.EntityCustomer)
			}
		}
		c.Name = name
	}
	if in.Phone != nil {
		c.Phone = trimmed(in.Phone)
	}
	if in.Email != nil {
		c.Email = lowerEmail(in.Email)
	}
	if in.Address != nil {
		c.Address = trimmed(in.Address)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCustomer(c)
	return &out, nil
}

func (uc *CustomerUseCase) List(ctx context.Context, userID string, filter repository.PartyFilter) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCustomer(c))
	}
	return items, nil
}

// Delete desactiva el cliente si tiene movimientos; si no, lo elimina.
func (uc *CustomerUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	used, err := uc.moves.ExistsForCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if used {
		c.IsActive = false
		c.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, c); err != nil {
			return nil, err
		}
		return &dto.DeleteResponse{ID: id, SoftDeleted: true}, nil
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *CustomerUseCase) get(ctx context.Context, userID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound(domain.EntityCustomer)
	}
	return c, nil
}
