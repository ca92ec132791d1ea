package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.PayableLedgerRepository = (*PayableLedgerRepo)(nil)

// PayableLedgerRepo implementación de PayableLedgerRepository sobre SQLite. Solo INSERT y SELECT.
type PayableLedgerRepo struct {
	q Querier
}

func NewPayableLedgerRepository(q Querier) *PayableLedgerRepo { return &PayableLedgerRepo{q: q} }

const ledgerColumns = `l.id, l.user_id, l.supplier_id, l.type, l.amount_delta, l.note, l.ref_move_id, l.created_at`

const ledgerDetailSelect = `SELECT ` + ledgerColumns + `, s.name, m.id, m.product_id, p.name, m.qty_delta, m.unit_price
	FROM payable_ledgers l
	JOIN suppliers s ON s.id = l.supplier_id
	LEFT JOIN stock_moves m ON m.id = l.ref_move_id
	LEFT JOIN products p ON p.id = m.product_id`

func (r *PayableLedgerRepo) Create(ctx context.Context, l *entity.PayableLedger) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO payable_ledgers (id, user_id, supplier_id, type, amount_delta, note, ref_move_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.SupplierID, string(l.Type), l.AmountDelta.String(), nullString(l.Note),
		nullString(l.RefMoveID), fmtTime(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert payable ledger: %w", err)
	}
	return nil
}

func (r *PayableLedgerRepo) GetDetail(ctx context.Context, userID, id string) (*entity.PayableLedgerDetail, error) {
	rows, err := r.q.QueryContext(ctx, ledgerDetailSelect+` WHERE l.user_id = ? AND l.id = ?`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get payable ledger: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLedgerDetail(rows)
}

func (r *PayableLedgerRepo) List(ctx context.Context, userID string, f repository.LedgerFilter) ([]*entity.PayableLedgerDetail, error) {
	w := &where{}
	w.add("l.user_id = ?", userID)
	if f.SupplierID != "" {
		w.add("l.supplier_id = ?", f.SupplierID)
	}
	if f.Type != "" {
		w.add("l.type = ?", string(f.Type))
	}
	if f.From != nil {
		w.add("l.created_at >= ?", fmtTime(*f.From))
	}
	if f.To != nil {
		w.add("l.created_at <= ?", fmtTime(*f.To))
	}
	rows, err := r.q.QueryContext(ctx, ledgerDetailSelect+` WHERE `+w.sql()+` ORDER BY l.created_at DESC, l.rowid DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payable ledgers: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayableLedgerDetail
	for rows.Next() {
		d, err := scanLedgerDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *PayableLedgerRepo) ListBySupplier(ctx context.Context, userID, supplierID string) ([]*entity.PayableLedger, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+ledgerColumns+` FROM payable_ledgers l
		WHERE l.user_id = ? AND l.supplier_id = ? ORDER BY l.created_at ASC, l.rowid ASC`, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier ledgers: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayableLedger
	for rows.Next() {
		var (
			l  entity.PayableLedger
			lr ledgerRow
		)
		if err := rows.Scan(lr.targets(&l)...); err != nil {
			return nil, fmt.Errorf("scan payable ledger: %w", err)
		}
		if err := lr.fill(&l); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *PayableLedgerRepo) ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM payable_ledgers WHERE user_id = ? AND supplier_id = ? LIMIT 1`, userID, supplierID)
}

type ledgerRow struct {
	typ, amount, createdAt string
	note, refMoveID        sql.NullString
}

func (lr *ledgerRow) targets(l *entity.PayableLedger) []any {
	return []any{&l.ID, &l.UserID, &l.SupplierID, &lr.typ, &lr.amount, &lr.note, &lr.refMoveID, &lr.createdAt}
}

func (lr *ledgerRow) fill(l *entity.PayableLedger) error {
	amount, err := decimal.NewFromString(lr.amount)
	if err != nil {
		return fmt.Errorf("amount_delta inválido %q: %w", lr.amount, err)
	}
	l.AmountDelta = amount
	l.Type = entity.LedgerType(lr.typ)
	l.Note = stringPtr(lr.note)
	l.RefMoveID = stringPtr(lr.refMoveID)
	l.CreatedAt, err = parseTime(lr.createdAt)
	return err
}

func scanLedgerDetail(rows *sql.Rows) (*entity.PayableLedgerDetail, error) {
	var (
		d                              entity.PayableLedgerDetail
		lr                             ledgerRow
		moveID, productID, productName sql.NullString
		moveQty, moveUnitPrice         sql.NullString
	)
	targets := append(lr.targets(&d.PayableLedger), &d.Supplier.Name, &moveID, &productID, &productName, &moveQty, &moveUnitPrice)
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan payable ledger detail: %w", err)
	}
	if err := lr.fill(&d.PayableLedger); err != nil {
		return nil, err
	}
	d.Supplier.ID = d.SupplierID
	if moveID.Valid {
		qty, err := decimal.NewFromString(moveQty.String)
		if err != nil {
			return nil, fmt.Errorf("qty_delta inválido %q: %w", moveQty.String, err)
		}
		price, err := decimalPtr(moveUnitPrice)
		if err != nil {
			return nil, err
		}
		d.RefMove = &entity.RefMoveSummary{
			ID:          moveID.String,
			ProductID:   productID.String,
			ProductName: productName.String,
			QtyDelta:    qty,
			UnitPrice:   price,
		}
	}
	return &d, nil
}
