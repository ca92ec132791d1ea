package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre SQLite.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo { return &SupplierRepo{q: q} }

const supplierColumns = `id, user_id, name, phone, email, address, allow_debt, is_active, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, nullString(s.Phone), nullString(s.Email), nullString(s.Address),
		s.AllowDebt, s.IsActive, fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntitySupplier)
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, userID, id string) (*entity.Supplier, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *SupplierRepo) GetByName(ctx context.Context, userID, name string) (*entity.Supplier, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND name = ?`, userID, name)
}

func (r *SupplierRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Supplier, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+supplierColumns+` FROM suppliers `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanSupplier(rows)
}

func (r *SupplierRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Supplier, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE `+w.sql()+` ORDER BY created_at DESC, rowid DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE suppliers SET name = ?, phone = ?, email = ?, address = ?, allow_debt = ?, is_active = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		s.Name, nullString(s.Phone), nullString(s.Email), nullString(s.Address), s.AllowDebt, s.IsActive,
		fmtTime(s.UpdatedAt), s.UserID, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntitySupplier)
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM suppliers WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func scanSupplier(rows *sql.Rows) (*entity.Supplier, error) {
	var (
		s                     entity.Supplier
		phone, email, address sql.NullString
		createdAt, updatedAt  string
	)
	if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &phone, &email, &address, &s.AllowDebt, &s.IsActive,
		&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan supplier: %w", err)
	}
	s.Phone, s.Email, s.Address = stringPtr(phone), stringPtr(email), stringPtr(address)
	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
