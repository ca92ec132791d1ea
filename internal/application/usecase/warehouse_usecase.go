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

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	moves repository.StockMoveRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, moves repository.StockMoveRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, moves: moves}
}

// Create crea una nueva bodega. El código se guarda en mayúsculas.
func (uc *WarehouseUseCase) Create(ctx context.Context, userID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
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
		return nil, domain.Conflict(domain.EntityWarehouse)
	}
	now := time.Now().UTC()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		UserID:    userID,
		Code:      code,
		Name:      name,
		Address:   trimmed(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := dto.FromWarehouse(w)
	return &out, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, userID, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromWarehouse(w)
	return &out, nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code == "" {
			return nil, domain.Invalid("el código es obligatorio")
		}
		if code != w.Code {
			existing, err := uc.repo.GetByCode(ctx, userID, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.Conflict(domain.EntityWarehouse)
			}
		}
		w.Code = code
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			w.Name = name
		}
	}
	if in.Address != nil {
		w.Address = trimmed(in.Address)
	}
	w.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	out := dto.FromWarehouse(w)
	return &out, nil
}

// List lista bodegas del usuario.
func (uc *WarehouseUseCase) List(ctx context.Context, userID string) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, dto.FromWarehouse(w))
	}
	return items, nil
}

// Delete elimina la bodega. Con movimientos registrados devuelve Conflict.
func (uc *WarehouseUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	if _, err := uc.get(ctx, userID, id); err != nil {
		return nil, err
	}
	used, err := uc.moves.ExistsForWarehouse(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ConflictWith(domain.EntityWarehouse, "tiene movimientos registrados")
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *WarehouseUseCase) get(ctx context.Context, userID, id string) (*entity.Warehouse, error) {
	w, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar bodega: %w", err)
	}
	if w == nil {
		return nil, domain.NotFound(domain.EntityWarehouse)
	}
	return w, nil
}
