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

// CategoryUseCase casos de uso CRUD para categorías de productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products}
}

func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
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
		return nil, domain.Conflict(domain.EntityCategory)
	}
	parentID, err := uc.ownedParent(ctx, userID, "", in.ParentID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		ParentID:  parentID,
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code == "" {
			return nil, domain.Invalid("el código es obligatorio")
		}
		if code != c.Code {
			existing, err := uc.repo.GetByCode(ctx, userID, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.Conflict(domain.EntityCategory)
			}
		}
		c.Code = code
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			c.Name = name
		}
	}
	if in.ParentID != nil {
		parentID, err := uc.ownedParent(ctx, userID, c.ID, in.ParentID)
		if err != nil {
			return nil, err
		}
		c.ParentID = parentID
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

func (uc *CategoryUseCase) List(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCategory(c))
	}
	return items, nil
}

// Delete elimina la categoría si no tiene productos ni subcategorías.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeleteResponse, error) {
	if _, err := uc.get(ctx, userID, id); err != nil {
		return nil, err
	}
	used, err := uc.products.ExistsWithCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ConflictWith(domain.EntityCategory, "hay productos en esta categoría")
	}
	children, err := uc.repo.HasChildren(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if children {
		return nil, domain.ConflictWith(domain.EntityCategory, "tiene subcategorías")
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{ID: id}, nil
}

func (uc *CategoryUseCase) get(ctx context.Context, userID, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar categoría: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound(domain.EntityCategory)
	}
	return c, nil
}

// ownedParent valida el padre: debe ser del usuario y no puede ser la misma categoría. "" la vuelve raíz.
func (uc *CategoryUseCase) ownedParent(ctx context.Context, userID, selfID string, id *string) (*string, error) {
	id = trimmed(id)
	if id == nil {
		return nil, nil
	}
	if *id == selfID {
		return nil, domain.Invalid("una categoría no puede ser su propio padre")
	}
	parent, err := uc.repo.GetByID(ctx, userID, *id)
	if err != nil {
		return nil, fmt.Errorf("buscar categoría padre: %w", err)
	}
	if parent == nil {
		return nil, domain.NotFound(domain.EntityCategory)
	}
	return &parent.ID, nil
}
