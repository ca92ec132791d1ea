package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, user_id, name, phone, email, address, is_active, created_at, updated_at`

// Create persiste un nuevo cliente. Nombre repetido => Conflict(customer).
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.Name, c.Phone, c.Email, c.Address, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCustomer)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, userID, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *CustomerRepo) GetByName(ctx context.Context, userID, name string) (*entity.Customer, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND name = $2`, userID, name)
}

func (r *CustomerRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers `+cond, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByUser lista clientes del usuario, más recientes primero.
func (r *CustomerRepo) ListByUser(ctx context.Context, userID string, filter repository.PartyFilter) ([]*entity.Customer, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if filter.Active != nil {
		w.add("is_active = ?", *filter.Active)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE `+w.sql()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $1, phone = $2, email = $3, address = $4, is_active = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8`,
		c.Name, c.Phone, c.Email, c.Address, c.IsActive, c.UpdatedAt, c.UserID, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityCustomer)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customers WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
