package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

const unitColumns = `id, user_id, code, name, created_at, updated_at`

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `INSERT INTO units (`+unitColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.UserID, u.Code, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityUnit)
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, userID, id string) (*entity.Unit, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND id = $2`, userID, id)
}

func (r *UnitRepo) GetByCode(ctx context.Context, userID, code string) (*entity.Unit, error) {
	return r.getOne(ctx, `WHERE user_id = $1 AND code = $2`, userID, code)
}

func (r *UnitRepo) getOne(ctx context.Context, cond string, args ...any) (*entity.Unit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM units `+cond, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (r *UnitRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `SELECT `+unitColumns+` FROM units WHERE user_id = $1 ORDER BY code`, userID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `UPDATE units SET code = $1, name = $2, updated_at = $3 WHERE user_id = $4 AND id = $5`,
		u.Code, u.Name, u.UpdatedAt, u.UserID, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.EntityUnit)
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM units WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

func scanUnit(row pgx.Row) (*entity.Unit, error) {
	var u entity.Unit
	if err := row.Scan(&u.ID, &u.UserID, &u.Code, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
