package inventory

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Moves   repository.StockMoveRepository
	Ledgers repository.PayableLedgerRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otra salida (error o panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
