package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, user_id, name, phone, email, address, allow_debt, is_active, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.UserID, s.Name, s.Phone, s.Email, s.Address, s.AllowDebt, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntitySupplier)
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, userID, id string) (*entity.Supplier, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *SupplierRepo) GetByName(ctx context.Context, userID, name string) (*entity.Supplier, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND name = $2`, userID, name)
}

func (r *SupplierRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers `+cond, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Supplier, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE `+w.sql()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $1, phone = $2, email = $3, address = $4, allow_debt = $5,
			is_active = $6, updated_at = $7
		WHERE user_id = $8 AND id = $9`,
		s.Name, s.Phone, s.Email, s.Address, s.AllowDebt, s.IsActive, s.UpdatedAt, s.UserID, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntitySupplier)
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.AllowDebt,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
