package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, user_id, parent_id, code, name, created_at, updated_at`

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.ParentID, c.Code, c.Name, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCategory)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *CategoryRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND code = $2`, userID, code)
}

func (r *CategoryRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories `+cond, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY code`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categories SET parent_id = $1, code = $2, name = $3, updated_at = $4
		WHERE user_id = $5 AND id = $6`,
		c.ParentID, c.Code, c.Name, c.UpdatedAt, c.UserID, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCategory)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// HasChildren indica si la categoría es padre de alguna otra.
func (r *CategoryRepo) HasChildren(ctx context.Context, userID, id string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM categories WHERE user_id = $1 AND parent_id = $2 LIMIT 1`, userID, id)
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.ParentID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
