package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre SQLite.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo { return &CustomerRepo{q: q} }

const customerColumns = `id, user_id, name, phone, email, address, is_active, created_at, updated_at`

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, nullString(c.Phone), nullString(c.Email), nullString(c.Address),
		c.IsActive, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCustomer)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, userID, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *CustomerRepo) GetByName(ctx context.Context, userID, name string) (*entity.Customer, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND name = ?`, userID, name)
}

func (r *CustomerRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCustomer(rows)
}

func (r *CustomerRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Customer, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE `+w.sql()+` ORDER BY created_at DESC, rowid DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE customers SET name = ?, phone = ?, email = ?, address = ?, is_active = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		c.Name, nullString(c.Phone), nullString(c.Email), nullString(c.Address), c.IsActive,
		fmtTime(c.UpdatedAt), c.UserID, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCustomer)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(rows *sql.Rows) (*entity.Customer, error) {
	var (
		c                     entity.Customer
		phone, email, address sql.NullString
		createdAt, updatedAt  string
	)
	if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &phone, &email, &address, &c.IsActive,
		&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	c.Phone, c.Email, c.Address = stringPtr(phone), stringPtr(email), stringPtr(address)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
