package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// PayableLedgerRepository puerto de persistencia de cuentas por pagar (append-only).
type PayableLedgerRepository interface {
	Create(ctx context.Context, entry *entity.PayableLedger) error
	GetDetail(ctx context.Context, userID, id string) (*entity.PayableLedgerDetail, error)
	List(ctx context.Context, userID string, filter LedgerFilter) ([]*entity.PayableLedgerDetail, error)
	// ListBySupplier devuelve el historial completo del proveedor, del más antiguo al más reciente.
	ListBySupplier(ctx context.Context, userID, supplierID string) ([]*entity.PayableLedger, error)
	ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error)
}
