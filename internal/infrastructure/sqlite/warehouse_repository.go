package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre SQLite.
type WarehouseRepo struct {
	q Querier
}

func NewWarehouseRepository(q Querier) *WarehouseRepo { return &WarehouseRepo{q: q} }

const warehouseColumns = `id, user_id, code, name, address, created_at, updated_at`

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO warehouses (`+warehouseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Code, w.Name, nullString(w.Address), fmtTime(w.CreatedAt), fmtTime(w.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityWarehouse)
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Warehouse, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Warehouse, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND code = ?`, userID, code)
}

func (r *WarehouseRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Warehouse, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+warehouseColumns+` FROM warehouses `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanWarehouse(rows)
}

func (r *WarehouseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Warehouse, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE user_id = ? ORDER BY code`, userID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE warehouses SET code = ?, name = ?, address = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		w.Code, w.Name, nullString(w.Address), fmtTime(w.UpdatedAt), w.UserID, w.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityWarehouse)
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM warehouses WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func scanWarehouse(rows *sql.Rows) (*entity.Warehouse, error) {
	var (
		w                    entity.Warehouse
		address              sql.NullString
		createdAt, updatedAt string
	)
	if err := rows.Scan(&w.ID, &w.UserID, &w.Code, &w.Name, &address, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan warehouse: %w", err)
	}
	w.Address = stringPtr(address)
	var err error
	if w.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
