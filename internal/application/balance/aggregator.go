// Package balance calcula stock y saldos por pagar a partir del historial completo.
// No hay saldos cacheados: el resultado siempre es la suma de los deltas guardados.
package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/ledger"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// Aggregator agrega historiales de movimientos y asientos.
type Aggregator struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	moves     repository.StockMoveRepository
	ledgers   repository.PayableLedgerRepository
}

// NewAggregator construye el agregador.
func NewAggregator(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	moves repository.StockMoveRepository,
	ledgers repository.PayableLedgerRepository,
) *Aggregator {
	return &Aggregator{products: products, suppliers: suppliers, moves: moves, ledgers: ledgers}
}

// CurrentStock suma los QtyDelta del producto.
func (a *Aggregator) CurrentStock(ctx context.Context, userID, productID string) (*dto.StockResponse, error) {
	p, err := a.products.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if p == nil {
		return nil, domain.NotFound(domain.EntityProduct)
	}
	history, err := a.moves.ListByProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("historial de movimientos: %w", err)
	}
	deltas := make([]decimal.Decimal, 0, len(history))
	for _, m := range history {
		deltas = append(deltas, m.QtyDelta)
	}
	return &dto.StockResponse{
		ProductID:    productID,
		CurrentStock: ledger.Fold(deltas),
		TotalMoves:   len(history),
	}, nil
}

// PayableBalance suma los AmountDelta del proveedor. Positivo = se le debe al proveedor.
func (a *Aggregator) PayableBalance(ctx context.Context, userID, supplierID string) (*dto.PayableBalanceResponse, error) {
	s, err := a.suppliers.GetByID(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor: %w", err)
	}
	if s == nil {
		return nil, domain.NotFound(domain.EntitySupplier)
	}
	history, err := a.ledgers.ListBySupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("historial de asientos: %w", err)
	}
	deltas := make([]decimal.Decimal, 0, len(history))
	for _, l := range history {
		deltas = append(deltas, l.AmountDelta)
	}
	return &dto.PayableBalanceResponse{
		SupplierID:   supplierID,
		Balance:      ledger.Fold(deltas),
		TotalLedgers: len(history),
	}, nil
}
