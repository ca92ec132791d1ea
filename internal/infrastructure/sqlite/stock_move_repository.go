package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo implementación de StockMoveRepository sobre SQLite. Solo INSERT y SELECT.
type StockMoveRepo struct {
	q Querier
}

func NewStockMoveRepository(q Querier) *StockMoveRepo { return &StockMoveRepo{q: q} }

const moveColumns = `m.id, m.user_id, m.product_id, m.warehouse_id, m.qty_delta, m.reason, m.supplier_id,
	m.customer_id, m.unit_price, m.pay_type, m.note, m.created_at`

const moveDetailSelect = `SELECT ` + moveColumns + `, p.name, p.unit_code, s.name, c.name
	FROM stock_moves m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id
	LEFT JOIN customers c ON c.id = m.customer_id`

func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	var payType sql.NullString
	if m.PayType != nil {
		payType = sql.NullString{String: string(*m.PayType), Valid: true}
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_moves (id, user_id, product_id, warehouse_id, qty_delta, reason, supplier_id,
			customer_id, unit_price, pay_type, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.ProductID, nullString(m.WarehouseID), m.QtyDelta.String(), string(m.Reason),
		nullString(m.SupplierID), nullString(m.CustomerID), nullDecimal(m.UnitPrice), payType,
		nullString(m.Note), fmtTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

func (r *StockMoveRepo) GetByID(ctx context.Context, userID, id string) (*entity.StockMove, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+moveColumns+` FROM stock_moves m WHERE m.user_id = ? AND m.id = ?`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMove(rows)
}

func (r *StockMoveRepo) GetDetail(ctx context.Context, userID, id string) (*entity.StockMoveDetail, error) {
	rows, err := r.q.QueryContext(ctx, moveDetailSelect+` WHERE m.user_id = ? AND m.id = ?`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get stock move detail: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMoveDetail(rows)
}

func (r *StockMoveRepo) List(ctx context.Context, userID string, f repository.MoveFilter) ([]*entity.StockMoveDetail, error) {
	w := &where{}
	w.add("m.user_id = ?", userID)
	if f.ProductID != "" {
		w.add("m.product_id = ?", f.ProductID)
	}
	if f.SupplierID != "" {
		w.add("m.supplier_id = ?", f.SupplierID)
	}
	if f.CustomerID != "" {
		w.add("m.customer_id = ?", f.CustomerID)
	}
	if f.WarehouseID != "" {
		w.add("m.warehouse_id = ?", f.WarehouseID)
	}
	if f.Reason != "" {
		w.add("m.reason = ?", string(f.Reason))
	}
	if f.From != nil {
		w.add("m.created_at >= ?", fmtTime(*f.From))
	}
	if f.To != nil {
		w.add("m.created_at <= ?", fmtTime(*f.To))
	}
	rows, err := r.q.QueryContext(ctx, moveDetailSelect+` WHERE `+w.sql()+` ORDER BY m.created_at DESC, m.rowid DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMoveDetail
	for rows.Next() {
		d, err := scanMoveDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *StockMoveRepo) ListByProduct(ctx context.Context, userID, productID string) ([]*entity.StockMove, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+moveColumns+` FROM stock_moves m
		WHERE m.user_id = ? AND m.product_id = ? ORDER BY m.created_at ASC, m.rowid ASC`, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("list product moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *StockMoveRepo) ExistsForProduct(ctx context.Context, userID, productID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = ? AND product_id = ? LIMIT 1`, userID, productID)
}

func (r *StockMoveRepo) ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = ? AND supplier_id = ? LIMIT 1`, userID, supplierID)
}

func (r *StockMoveRepo) ExistsForCustomer(ctx context.Context, userID, customerID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = ? AND customer_id = ? LIMIT 1`, userID, customerID)
}

func (r *StockMoveRepo) ExistsForWarehouse(ctx context.Context, userID, warehouseID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = ? AND warehouse_id = ? LIMIT 1`, userID, warehouseID)
}

// moveRow columnas crudas de stock_moves.
type moveRow struct {
	warehouseID, supplierID, customerID sql.NullString
	unitPrice, payType, note            sql.NullString
	qty, reason, createdAt              string
}

func (mr *moveRow) targets(m *entity.StockMove) []any {
	return []any{&m.ID, &m.UserID, &m.ProductID, &mr.warehouseID, &mr.qty, &mr.reason, &mr.supplierID,
		&mr.customerID, &mr.unitPrice, &mr.payType, &mr.note, &mr.createdAt}
}

func (mr *moveRow) fill(m *entity.StockMove) error {
	qty, err := decimal.NewFromString(mr.qty)
	if err != nil {
		return fmt.Errorf("qty_delta inválido %q: %w", mr.qty, err)
	}
	m.QtyDelta = qty
	m.Reason = entity.MoveReason(mr.reason)
	m.WarehouseID = stringPtr(mr.warehouseID)
	m.SupplierID = stringPtr(mr.supplierID)
	m.CustomerID = stringPtr(mr.customerID)
	m.Note = stringPtr(mr.note)
	if m.UnitPrice, err = decimalPtr(mr.unitPrice); err != nil {
		return err
	}
	if mr.payType.Valid {
		pt := entity.PayType(mr.payType.String)
		m.PayType = &pt
	}
	m.CreatedAt, err = parseTime(mr.createdAt)
	return err
}

func scanMove(rows *sql.Rows) (*entity.StockMove, error) {
	var (
		m  entity.StockMove
		mr moveRow
	)
	if err := rows.Scan(mr.targets(&m)...); err != nil {
		return nil, fmt.Errorf("scan stock move: %w", err)
	}
	if err := mr.fill(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMoveDetail(rows *sql.Rows) (*entity.StockMoveDetail, error) {
	var (
		d                          entity.StockMoveDetail
		mr                         moveRow
		supplierName, customerName sql.NullString
	)
	targets := append(mr.targets(&d.StockMove), &d.Product.Name, &d.Product.UnitCode, &supplierName, &customerName)
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan stock move detail: %w", err)
	}
	if err := mr.fill(&d.StockMove); err != nil {
		return nil, err
	}
	d.Product.ID = d.ProductID
	if d.SupplierID != nil && supplierName.Valid {
		d.Supplier = &entity.PartySummary{ID: *d.SupplierID, Name: supplierName.String}
	}
	if d.CustomerID != nil && customerName.Valid {
		d.Customer = &entity.PartySummary{ID: *d.CustomerID, Name: customerName.String}
	}
	return &d, nil
}
