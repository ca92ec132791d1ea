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

// UnitUseCase casos de uso CRUD para unidades de medida.
type UnitUseCase struct {
	repo     repository.UnitRepository
	products repository.ProductRepository
}

func NewUnitUseCase(repo repository.UnitRepository, products repository.ProductRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo, products: products}
}

func (uc *UnitUseCase) Create(ctx context.Context, userID string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	code := normalizeCode(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.Invalid("código y nombre son obligatorios")
	}
	existing, err := uc.repo.GetByCode(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(domain.EntityUnit)
	}
	now := time.Now().UTC()
	u := &entity.Unit{ID: uuid.New().String(), UserID: userID, Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUnit(u)
	return &out, nil
}

func (uc *UnitUseCase) GetByID(ctx context.Context, userID, id string) (*dto.UnitResponse, error) {
	u, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromUnit(u)
	return &out, nil
}

// Update cambiar el código de una unidad en uso también devuelve Conflict.
func (uc *UnitUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code == "" {
			return nil, domain.Invalid("el código es obligatorio")
		}
		if code != u.Code {
			existing, err := uc.repo.GetByCode(ctx, userID, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.Conflict(domain.EntityUnit)
			}
			used, err := uc.products.ExistsWithUnit(ctx, userID, u.Code)
			if err != nil {
				return nil, err
			}
			if used {
				return nil, domain.ConflictWith(domain.EntityUnit, "hay productos que usan este código")
			}
		}
		u.Code = code
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			u.Name = name
		}
	}
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUnit(u)
	return &out, nil
}

func (uc *UnitUseCase) List(ctx context.Context, userID string) ([]dto.UnitResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.FromUnit(u))
	}
	return items, nil
}

// Delete elimina la unidad si ningún producto la usa.
func (uc *UnitUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	u, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	used, err := uc.products.ExistsWithUnit(ctx, userID, u.Code)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ConflictWith(domain.EntityUnit, "hay productos que usan esta unidad")
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *UnitUseCase) get(ctx context.Context, userID, id string) (*entity.Unit, error) {
	u, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar unidad: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound(domain.EntityUnit)
	}
	return u, nil
}
