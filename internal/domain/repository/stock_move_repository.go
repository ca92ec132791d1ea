package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// StockMoveRepository puerto de persistencia de movimientos. Solo inserción y lectura:
// no existe Update ni Delete porque el historial es la fuente del stock.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	GetByID(ctx context.Context, userID, id string) (*entity.StockMove, error)
	GetDetail(ctx context.Context, userID, id string) (*entity.StockMoveDetail, error)
	List(ctx context.Context, userID string, filter MoveFilter) ([]*entity.StockMoveDetail, error)
	// ListByProduct devuelve el historial completo del producto, del más antiguo al más reciente.
	ListByProduct(ctx context.Context, userID, productID string) ([]*entity.StockMove, error)
	ExistsForProduct(ctx context.Context, userID, productID string) (bool, error)
	ExistsForSupplier(ctx context.Context, userID, supplierID string) (bool, error)
	ExistsForCustomer(ctx context.Context, userID, customerID string) (bool, error)
	ExistsForWarehouse(ctx context.Context, userID, warehouseID string) (bool, error)
}
