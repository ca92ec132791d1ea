package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/ledger"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// StockMoveUseCase registra y consulta movimientos de stock.
// Toda escritura pasa por TxRunner: el movimiento y, si es compra a crédito,
// su factura BILL se confirman juntos o no se confirma ninguno.
type StockMoveUseCase struct {
	txRunner   TxRunner
	moves      repository.StockMoveRepository
	products   repository.ProductRepository
	suppliers  repository.SupplierRepository
	customers  repository.CustomerRepository
	warehouses repository.WarehouseRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewStockMoveUseCase construye el caso de uso.
func NewStockMoveUseCase(
	txRunner TxRunner,
	moves repository.StockMoveRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	customers repository.CustomerRepository,
	warehouses repository.WarehouseRepository,
	log zerolog.Logger,
) *StockMoveUseCase {
	return &StockMoveUseCase{
		txRunner:   txRunner,
		moves:      moves,
		products:   products,
		suppliers:  suppliers,
		customers:  customers,
		warehouses: warehouses,
		log:        log.With().Str("component", "stock_moves").Logger(),
		now:        time.Now,
	}
}

// MoveInput entrada para registrar un movimiento. Qty es la magnitud positiva.
type MoveInput struct {
	ProductID   string
	WarehouseID *string
	Qty         decimal.Decimal
	Reason      entity.MoveReason
	SupplierID  *string
	CustomerID  *string
	UnitPrice   *decimal.Decimal
	PayType     *entity.PayType
	Note        *string
}

// Record valida la entrada contra los datos del usuario, deriva el signo y persiste el movimiento.
func (uc *StockMoveUseCase) Record(ctx context.Context, userID string, in MoveInput) (*entity.StockMoveDetail, error) {
	return uc.record(ctx, userID, in, false)
}

// record valida referencias y reglas en orden; creditOnly exige además la condición de factura
// a crédito, evaluada después de las referencias para que un recurso ajeno siga siendo NotFound.
func (uc *StockMoveUseCase) record(ctx context.Context, userID string, in MoveInput, creditOnly bool) (*entity.StockMoveDetail, error) {
	product, err := uc.checkReferences(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	if err := checkRules(in); err != nil {
		return nil, err
	}
	if creditOnly && !ledger.IsCreditBill(in.Reason, in.PayType, in.UnitPrice) {
		return nil, domain.Invalid("una compra a crédito requiere reason IN, payType CREDIT y unitPrice")
	}
	qty, err := ledger.DeriveQtyDelta(in.Qty, in.Reason)
	if err != nil {
		return nil, err
	}
	move := &entity.StockMove{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProductID:   product.ID,
		WarehouseID: nonEmpty(in.WarehouseID),
		QtyDelta:    qty,
		Reason:      in.Reason,
		SupplierID:  nonEmpty(in.SupplierID),
		CustomerID:  nonEmpty(in.CustomerID),
		UnitPrice:   in.UnitPrice,
		PayType:     in.PayType,
		Note:        entity.NormalizeNote(in.Note),
		CreatedAt:   uc.now().UTC(),
	}
	return uc.write(ctx, move, product, in.Qty)
}

// RecordCreditPurchase registra una compra a crédito (IN + CREDIT + precio) junto con su factura.
// Rechaza cualquier entrada que no cumpla esa condición.
func (uc *StockMoveUseCase) RecordCreditPurchase(ctx context.Context, userID string, in MoveInput) (*entity.StockMoveDetail, error) {
	return uc.record(ctx, userID, in, true)
}

// checkReferences pasos 1-3b: producto, proveedor, cliente y bodega deben pertenecer al usuario.
func (uc *StockMoveUseCase) checkReferences(ctx context.Context, userID string, in MoveInput) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, userID, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.NotFound(domain.EntityProduct)
	}
	if id := nonEmpty(in.SupplierID); id != nil {
		s, err := uc.suppliers.GetByID(ctx, userID, *id)
		if err != nil {
			return nil, fmt.Errorf("buscar proveedor: %w", err)
		}
		if s == nil {
			return nil, domain.NotFound(domain.EntitySupplier)
		}
	}
	if id := nonEmpty(in.CustomerID); id != nil {
		c, err := uc.customers.GetByID(ctx, userID, *id)
		if err != nil {
			return nil, fmt.Errorf("buscar cliente: %w", err)
		}
		if c == nil {
			return nil, domain.NotFound(domain.EntityCustomer)
		}
	}
	if id := nonEmpty(in.WarehouseID); id != nil {
		w, err := uc.warehouses.GetByID(ctx, userID, *id)
		if err != nil {
			return nil, fmt.Errorf("buscar bodega: %w", err)
		}
		if w == nil {
			return nil, domain.NotFound(domain.EntityWarehouse)
		}
	}
	return product, nil
}

// checkRules pasos 4-8, en ese orden.
func checkRules(in MoveInput) error {
	if in.Reason == entity.MoveReasonIn && nonEmpty(in.SupplierID) == nil {
		return domain.Invalid("las entradas IN requieren proveedor")
	}
	if in.Reason == entity.MoveReasonOut && nonEmpty(in.CustomerID) == nil {
		return domain.Invalid("las salidas OUT requieren cliente")
	}
	if in.PayType != nil {
		if !in.PayType.Valid() {
			return domain.Invalid("forma de pago desconocida: " + string(*in.PayType))
		}
		if in.Reason != entity.MoveReasonIn {
			return domain.Invalid("la forma de pago solo aplica a entradas IN")
		}
	}
	if in.Reason == entity.MoveReasonIn && in.PayType != nil && *in.PayType == entity.PayTypeCredit &&
		(in.UnitPrice == nil || !in.UnitPrice.IsPositive()) {
		return domain.Invalid("las compras a crédito requieren precio unitario mayor a cero")
	}
	if !in.Qty.IsPositive() {
		return domain.Invalid("la cantidad debe ser positiva")
	}
	return nil
}

// write inserta el movimiento y, si corresponde, la factura BILL en una sola transacción,
// y relee el detalle dentro de la misma.
func (uc *StockMoveUseCase) write(ctx context.Context, move *entity.StockMove, product *entity.Product, qty decimal.Decimal) (*entity.StockMoveDetail, error) {
	var (
		detail *entity.StockMoveDetail
		bill   *entity.PayableLedger
	)
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := r.Moves.Create(ctx, move); err != nil {
			return err
		}
		if ledger.IsCreditBill(move.Reason, move.PayType, move.UnitPrice) {
			b, err := newBill(move, product, qty)
			if err != nil {
				return err
			}
			if err := r.Ledgers.Create(ctx, b); err != nil {
				return err
			}
			bill = b
		}
		d, err := r.Moves.GetDetail(ctx, move.UserID, move.ID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.NotFound(domain.EntityStockMove)
		}
		detail = d
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("user_id", move.UserID).
			Str("product_id", move.ProductID).
			Str("reason", string(move.Reason)).
			Msg("registro de movimiento revertido")
		return nil, err
	}
	ev := uc.log.Info().
		Str("move_id", move.ID).
		Str("user_id", move.UserID).
		Str("product_id", move.ProductID).
		Str("reason", string(move.Reason)).
		Str("qty_delta", move.QtyDelta.String())
	if bill != nil {
		ev = ev.Str("bill_id", bill.ID).Str("amount_delta", bill.AmountDelta.String())
	}
	ev.Msg("movimiento registrado")
	return detail, nil
}

// newBill arma la factura BILL emparejada con una compra a crédito.
func newBill(move *entity.StockMove, product *entity.Product, qty decimal.Decimal) (*entity.PayableLedger, error) {
	amount, err := ledger.DeriveAmountDelta(ledger.BillAmount(move.QtyDelta, *move.UnitPrice), entity.LedgerTypeBill)
	if err != nil {
		return nil, err
	}
	note := move.Note
	if note == nil {
		n := fmt.Sprintf("Factura de compra: %s - Cant: %s", product.Name, qty.String())
		note = &n
	}
	moveID := move.ID
	return &entity.PayableLedger{
		ID:          uuid.New().String(),
		UserID:      move.UserID,
		SupplierID:  *move.SupplierID,
		Type:        entity.LedgerTypeBill,
		AmountDelta: amount,
		Note:        note,
		RefMoveID:   &moveID,
		CreatedAt:   move.CreatedAt,
	}, nil
}

// GetByID devuelve el detalle de un movimiento del usuario.
func (uc *StockMoveUseCase) GetByID(ctx context.Context, userID, id string) (*entity.StockMoveDetail, error) {
	d, err := uc.moves.GetDetail(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar movimiento: %w", err)
	}
	if d == nil {
		return nil, domain.NotFound(domain.EntityStockMove)
	}
	return d, nil
}

// List lista los movimientos del usuario, del más reciente al más antiguo.
func (uc *StockMoveUseCase) List(ctx context.Context, userID string, filter repository.MoveFilter) ([]*entity.StockMoveDetail, error) {
	list, err := uc.moves.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return list, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
