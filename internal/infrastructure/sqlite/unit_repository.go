package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación de UnitRepository sobre SQLite.
type UnitRepo struct {
	q Querier
}

func NewUnitRepository(q Querier) *UnitRepo { return &UnitRepo{q: q} }

const unitColumns = `id, user_id, code, name, created_at, updated_at`

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO units (`+unitColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.UserID, u.Code, u.Name, fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityUnit)
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, userID, id string) (*entity.Unit, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *UnitRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Unit, error) {
	return r.getOne(ctx, `WHERE user_id = ? AND code = ?`, userID, code)
}

func (r *UnitRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Unit, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+unitColumns+` FROM units `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanUnit(rows)
}

func (r *UnitRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Unit, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+unitColumns+` FROM units WHERE user_id = ? ORDER BY code`, userID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.ExecContext(ctx, `UPDATE units SET code = ?, name = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		u.Code, u.Name, fmtTime(u.UpdatedAt), u.UserID, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityUnit)
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM units WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

func scanUnit(rows *sql.Rows) (*entity.Unit, error) {
	var (
		u                    entity.Unit
		createdAt, updatedAt string
	)
	if err := rows.Scan(&u.ID, &u.UserID, &u.Code, &u.Name, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan unit: %w", err)
	}
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
