package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo implementación de StockMoveRepository sobre PostgreSQL.
// Los movimientos son inmutables: solo INSERT y SELECT.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const moveColumns = `m.id, m.user_id, m.product_id, m.warehouse_id, m.qty_delta, m.reason, m.supplier_id,
	m.customer_id, m.unit_price, m.pay_type, m.note, m.created_at`

const moveDetailSelect = `SELECT ` + moveColumns + `, p.name, p.unit_code, s.name, c.name
	FROM stock_moves m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id
	LEFT JOIN customers c ON c.id = m.customer_id`

// Create inserta el movimiento.
func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	var payType *string
	if m.PayType != nil {
		pt := string(*m.PayType)
		payType = &pt
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_moves (id, user_id, product_id, warehouse_id, qty_delta, reason, supplier_id,
			customer_id, unit_price, pay_type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.UserID, m.ProductID, m.WarehouseID, m.QtyDelta, string(m.Reason), m.SupplierID,
		m.CustomerID, m.UnitPrice, payType, m.Note, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// GetByID obtiene el movimiento sin joins (nil si no existe o no es del usuario).
func (r *StockMoveRepo) GetByID(ctx context.Context, userID, id string) (*entity.StockMove, error) {
	m, err := scanMove(r.q.QueryRow(ctx, `SELECT `+moveColumns+` FROM stock_moves m WHERE m.user_id = $1 AND m.id = $2`, userID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return m, nil
}

// GetDetail obtiene el movimiento con los resúmenes de producto, proveedor y cliente.
func (r *StockMoveRepo) GetDetail(ctx context.Context, userID, id string) (*entity.StockMoveDetail, error) {
	d, err := scanMoveDetail(r.q.QueryRow(ctx, moveDetailSelect+` WHERE m.user_id = $1 AND m.id = $2`, userID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move detail: %w", err)
	}
	return d, nil
}

// List aplica los filtros opcionales; más recientes primero.
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
		w.add("m.created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("m.created_at <= ?", *f.To)
	}
	rows, err := r.q.Query(ctx, moveDetailSelect+` WHERE `+w.sql()+` ORDER BY m.created_at DESC, m.id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMoveDetail
	for rows.Next() {
		d, err := scanMoveDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListByProduct historial completo del producto, del más antiguo al más reciente.
func (r *StockMoveRepo) ListByProduct(ctx context.Context, userID, productID string) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moveColumns+` FROM stock_moves m
		WHERE m.user_id = $1 AND m.product_id = $2 ORDER BY m.created_at ASC, m.id ASC`, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("list product moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *StockMoveRepo) ExistsForProduct(ctx context.Context, userID, productID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = $1 AND product_id = $2 LIMIT 1`, userID, productID)
}

func (r *StockMoveRepo) ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = $1 AND supplier_id = $2 LIMIT 1`, userID, supplierID)
}

func (r *StockMoveRepo) ExistsForCustomer(ctx context.Context, userID, customerID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = $1 AND customer_id = $2 LIMIT 1`, userID, customerID)
}

func (r *StockMoveRepo) ExistsForWarehouse(ctx context.Context, userID, warehouseID string) (bool, error) {
	return exists(ctx, r.q, `SELECT 1 FROM stock_moves WHERE user_id = $1 AND warehouse_id = $2 LIMIT 1`, userID, warehouseID)
}

// moveRow columnas que no se escanean directo al entity (enums).
type moveRow struct {
	reason  string
	payType *string
}

func (mr *moveRow) targets(m *entity.StockMove) []any {
	return []any{&m.ID, &m.UserID, &m.ProductID, &m.WarehouseID, &m.QtyDelta, &mr.reason, &m.SupplierID,
		&m.CustomerID, &m.UnitPrice, &mr.payType, &m.Note, &m.CreatedAt}
}

func (mr *moveRow) fill(m *entity.StockMove) {
	m.Reason = entity.MoveReason(mr.reason)
	if mr.payType != nil {
		pt := entity.PayType(*mr.payType)
		m.PayType = &pt
	}
}

func scanMove(row pgx.Row) (*entity.StockMove, error) {
	var (
		m  entity.StockMove
		mr moveRow
	)
	if err := row.Scan(mr.targets(&m)...); err != nil {
		return nil, err
	}
	mr.fill(&m)
	return &m, nil
}

func scanMoveDetail(row pgx.Row) (*entity.StockMoveDetail, error) {
	var (
		d                          entity.StockMoveDetail
		mr                         moveRow
		supplierName, customerName *string
	)
	targets := append(mr.targets(&d.StockMove), &d.Product.Name, &d.Product.UnitCode, &supplierName, &customerName)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	mr.fill(&d.StockMove)
	d.Product.ID = d.ProductID
	if d.SupplierID != nil && supplierName != nil {
		d.Supplier = &entity.PartySummary{ID: *d.SupplierID, Name: *supplierName}
	}
	if d.CustomerID != nil && customerName != nil {
		d.Customer = &entity.PartySummary{ID: *d.CustomerID, Name: *customerName}
	}
	return &d, nil
}
