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

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	moves      repository.StockMoveRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, moves repository.StockMoveRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, moves: moves}
}

// Create crea un nuevo producto. UnitCode por defecto "pcs".
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(domain.EntityProduct)
	}
	categoryID, err := uc.ownedCategory(ctx, userID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	unitCode := strings.TrimSpace(in.UnitCode)
	if unitCode == "" {
		unitCode = entity.DefaultUnitCode
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       name,
		UnitCode:   unitCode,
		CategoryID: categoryID,
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
		IsActive:   in.IsActive == nil || *in.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update actualización parcial. Renombrar a un nombre existente devuelve Conflict.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("el nombre es obligatorio")
		}
		if name != product.Name {
			existing, err := uc.repo.GetByName(ctx, userID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, domain.Conflict(domain.EntityProduct)
			}
		}
		product.Name = name
	}
	if in.UnitCode != nil {
		if code := strings.TrimSpace(*in.UnitCode); code != "" {
			product.UnitCode = code
		}
	}
	if in.CategoryID != nil {
		categoryID, err := uc.ownedCategory(ctx, userID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.CostPrice != nil {
		product.CostPrice = in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = in.SalePrice
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos del usuario, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, userID string, filter repository.PartyFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return items, nil
}

// Delete desactiva el producto si tiene movimientos; si no, lo elimina.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	product, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	used, err := uc.moves.ExistsForProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if used {
		product.IsActive = false
		product.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
		return &dto.DeleteResponse{ID: id, SoftDeleted: true}, nil
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.NotFound(domain.EntityProduct)
	}
	return product, nil
}

// ownedCategory valida que la categoría (si viene) pertenezca al usuario. "" la quita.
func (uc *ProductUseCase) ownedCategory(ctx context.Context, userID string, id *string) (*string, error) {
	id = trimmed(id)
	if id == nil {
		return nil, nil
	}
	c, err := uc.categories.GetByID(ctx, userID, *id)
	if err != nil {
		return nil, fmt.Errorf("buscar categoría: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound(domain.EntityCategory)
	}
	return &c.ID, nil
}
