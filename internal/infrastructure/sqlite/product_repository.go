package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo { return &ProductRepo{q: q} }

const productColumns = `id, user_id, name, unit_code, category_id, cost_price, sale_price, is_active, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.UnitCode, nullString(p.CategoryID),
		nullDecimal(p.CostPrice), nullDecimal(p.SalePrice), p.IsActive,
		fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityProduct)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *ProductRepo) GetByName(ctx context.Context, userID, name string) (*entity.Product, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND name = ?`, userID, name)
}

func (r *ProductRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanProduct(rows)
}

func (r *ProductRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Product, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+w.sql()+` ORDER BY created_at DESC, rowid DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, unit_code = ?, category_id = ?, cost_price = ?, sale_price = ?,
			is_active = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		p.Name, p.UnitCode, nullString(p.CategoryID), nullDecimal(p.CostPrice), nullDecimal(p.SalePrice),
		p.IsActive, fmtTime(p.UpdatedAt), p.UserID, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityProduct)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) ExistsWithUnit(ctx context.Context, userID, unitCode string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM products WHERE user_id = ? AND upper(unit_code) = upper(?) LIMIT 1`, userID, unitCode)
}

func (r *ProductRepo) ExistsWithCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM products WHERE user_id = ? AND category_id = ? LIMIT 1`, userID, categoryID)
}

func scanProduct(rows *sql.Rows) (*entity.Product, error) {
	var (
		p                    entity.Product
		categoryID           sql.NullString
		cost, sale           sql.NullString
		createdAt, updatedAt string
	)
	if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.UnitCode, &categoryID, &cost, &sale,
		&p.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	var err error
	p.CategoryID = stringPtr(categoryID)
	if p.CostPrice, err = decimalPtr(cost); err != nil {
		return nil, err
	}
	if p.SalePrice, err = decimalPtr(sale); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// exists ejecuta una consulta SELECT 1 ... LIMIT 1.
func exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
