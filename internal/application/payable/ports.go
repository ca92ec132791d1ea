package payable

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// Statement datos del estado de cuenta de un proveedor. Entries va del más antiguo al más reciente.
type Statement struct {
	Supplier    entity.Supplier
	Entries     []*entity.PayableLedger
	Balance     decimal.Decimal
	GeneratedAt time.Time
}

// StatementPDFGenerator genera la representación PDF de un Statement.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st *Statement) ([]byte, error)
}
