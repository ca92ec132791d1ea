package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, name, unit_code, category_id, cost_price, sale_price, is_active, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.UserID, p.Name, p.UnitCode, p.CategoryID, p.CostPrice, p.SalePrice, p.IsActive,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityProduct)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del usuario.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND id = $2`, userID, id)
}

// GetByName obtiene un producto del usuario por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, userID, name string) (*entity.Product, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND name = $2`, userID, name)
}

func (r *ProductRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products `+cond, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListByUser lista productos del usuario, más recientes primero.
func (r *ProductRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Product, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+w.sql()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $1, unit_code = $2, category_id = $3, cost_price = $4, sale_price = $5,
			is_active = $6, updated_at = $7
		WHERE user_id = $8 AND id = $9`,
		p.Name, p.UnitCode, p.CategoryID, p.CostPrice, p.SalePrice, p.IsActive, p.UpdatedAt, p.UserID, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityProduct)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina físicamente el producto.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) ExistsWithUnit(ctx context.Context, userID, unitCode string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM products WHERE user_id = $1 AND upper(unit_code) = upper($2) LIMIT 1`, userID, unitCode)
}

func (r *ProductRepo) ExistsWithCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM products WHERE user_id = $1 AND category_id = $2 LIMIT 1`, userID, categoryID)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.UnitCode, &p.CategoryID, &p.CostPrice, &p.SalePrice,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
