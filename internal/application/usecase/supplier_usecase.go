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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo    repository.SupplierRepository
	moves   repository.StockMoveRepository
	ledgers repository.PayableLedgerRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, moves repository.StockMoveRepository, ledgers repository.PayableLedgerRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, moves: moves, ledgers: ledgers}
}

// Create crea un proveedor. AllowDebt por defecto true.
func (uc *SupplierUseCase) Create(ctx context.Context, userID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(domain.EntitySupplier)
	}
	now := time.Now().UTC()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Phone:     trimmed(in.Phone),
		Email:     lowerEmail(in.Email),
		Address:   trimmed(in.Address),
		AllowDebt: in.AllowDebt == nil || *in.AllowDebt,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(supplier)
	return &out, nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// Update actualización parcial.
func (uc *SupplierUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("el nombre es obligatorio")
		}
		if name != s.Name {
			existing, err := uc.repo.GetByName(ctx, userID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != s.ID {
				return nil, domain.Conflict(domain.EntitySupplier)
			}
		}
		s.Name = name
	}
	if in.Phone != nil {
		s.Phone = trimmed(in.Phone)
	}
	if in.Email != nil {
		s.Email = lowerEmail(in.Email)
	}
	if in.Address != nil {
		s.Address = trimmed(in.Address)
	}
	if in.AllowDebt != nil {
		s.AllowDebt = *in.AllowDebt
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// List lista proveedores del usuario.
func (uc *SupplierUseCase) List(ctx context.Context, userID string, filter repository.PartyFilter) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSupplier(s))
	}
	return items, nil
}

// Delete desactiva el proveedor si tiene movimientos; si no, lo elimina.
func (uc *SupplierUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	s, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	used, err := uc.inUse(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if used {
		s.IsActive = false
		s.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, s); err != nil {
			return nil, err
		}
		return &dto.DeleteResponse{ID: id, SoftDeleted: true}, nil
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *SupplierUseCase) get(ctx context.Context, userID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor: %w", err)
	}
	if s == nil {
		return nil, domain.NotFound(domain.EntitySupplier)
	}
	return s, nil
}

// inUse es verdadero si el proveedor tiene movimientos o asientos en su cuenta por pagar.
// Los asientos son append-only: nunca se borra un proveedor con historial.
func (uc *SupplierUseCase) inUse(ctx context.Context, userID, id string) (bool, error) {
	used, err := uc.moves.ExistsForSupplier(ctx, userID, id)
	if err != nil || used {
		return used, err
	}
	return uc.ledgers.ExistsForSupplier(ctx, userID, id)
}
