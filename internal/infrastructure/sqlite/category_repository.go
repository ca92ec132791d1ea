package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo { return &CategoryRepo{q: q} }

const categoryColumns = `id, user_id, parent_id, code, name, created_at, updated_at`

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, nullString(c.ParentID), c.Code, c.Name, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCategory)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, userID, id string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *CategoryRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND code = ?`, userID, code)
}

func (r *CategoryRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCategory(rows)
}

func (r *CategoryRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY code`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE categories SET parent_id = ?, code = ?, name = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		nullString(c.ParentID), c.Code, c.Name, fmtTime(c.UpdatedAt), c.UserID, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCategory)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) HasChildren(ctx context.Context, userID, id string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM categories WHERE user_id = ? AND parent_id = ? LIMIT 1`, userID, id)
}

func scanCategory(rows *sql.Rows) (*entity.Category, error) {
	var (
		c                    entity.Category
		parentID             sql.NullString
		createdAt, updatedAt string
	)
	if err := rows.Scan(&c.ID, &c.UserID, &parentID, &c.Code, &c.Name, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	c.ParentID = stringPtr(parentID)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
