package payable

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

// LedgerUseCase registra y consulta asientos de cuentas por pagar.
type LedgerUseCase struct {
	ledgers   repository.PayableLedgerRepository
	suppliers repository.SupplierRepository
	moves     repository.StockMoveRepository
	generator StatementPDFGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	ledgers repository.PayableLedgerRepository,
	suppliers repository.SupplierRepository,
	moves repository.StockMoveRepository,
	generator StatementPDFGenerator,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		ledgers:   ledgers,
		suppliers: suppliers,
		moves:     moves,
		generator: generator,
		log:       log.With().Str("component", "payable_ledgers").Logger(),
		now:       time.Now,
	}
}

// LedgerInput entrada para registrar un asiento. Amount es la magnitud no negativa.
type LedgerInput struct {
	SupplierID string
	Type       entity.LedgerType
	Amount     decimal.Decimal
	Note       *string
	RefMoveID  *string
}

// Record verifica proveedor y movimiento de referencia, deriva el signo e inserta el asiento.
func (uc *LedgerUseCase) Record(ctx context.Context, userID string, in LedgerInput) (*entity.PayableLedgerDetail, error) {
	if _, err := uc.ownedSupplier(ctx, userID, in.SupplierID); err != nil {
		return nil, err
	}
	var refMoveID *string
	if in.RefMoveID != nil && strings.TrimSpace(*in.RefMoveID) != "" {
		move, err := uc.moves.GetByID(ctx, userID, *in.RefMoveID)
		if err != nil {
			return nil, fmt.Errorf("buscar movimiento de referencia: %w", err)
		}
		// Un movimiento de otro proveedor se reporta igual que uno inexistente.
		if move == nil || move.SupplierID == nil || *move.SupplierID != in.SupplierID {
			return nil, domain.NotFound(domain.EntityStockMove)
		}
		refMoveID = &move.ID
	}
	amount, err := ledger.DeriveAmountDelta(in.Amount, in.Type)
	if err != nil {
		return nil, err
	}
	entry := &entity.PayableLedger{
		ID:          uuid.New().String(),
		UserID:      userID,
		SupplierID:  in.SupplierID,
		Type:        in.Type,
		AmountDelta: amount,
		Note:        entity.NormalizeNote(in.Note),
		RefMoveID:   refMoveID,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.ledgers.Create(ctx, entry); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Str("supplier_id", in.SupplierID).Msg("insertar asiento")
		return nil, err
	}
	uc.log.Info().
		Str("ledger_id", entry.ID).
		Str("user_id", userID).
		Str("supplier_id", entry.SupplierID).
		Str("type", string(entry.Type)).
		Str("amount_delta", entry.AmountDelta.String()).
		Msg("asiento registrado")
	return uc.GetByID(ctx, userID, entry.ID)
}

// GetByID devuelve el detalle de un asiento del usuario.
func (uc *LedgerUseCase) GetByID(ctx context.Context, userID, id string) (*entity.PayableLedgerDetail, error) {
	d, err := uc.ledgers.GetDetail(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("buscar asiento: %w", err)
	}
	if d == nil {
		return nil, domain.NotFound(domain.EntityPayableLedger)
	}
	return d, nil
}

// List lista asientos del usuario, del más reciente al más antiguo.
func (uc *LedgerUseCase) List(ctx context.Context, userID string, filter repository.LedgerFilter) ([]*entity.PayableLedgerDetail, error) {
	list, err := uc.ledgers.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listar asientos: %w", err)
	}
	return list, nil
}

// ListBySupplier historial completo de un proveedor del usuario, del más antiguo al más reciente.
func (uc *LedgerUseCase) ListBySupplier(ctx context.Context, userID, supplierID string) ([]*entity.PayableLedger, error) {
	if _, err := uc.ownedSupplier(ctx, userID, supplierID); err != nil {
		return nil, err
	}
	list, err := uc.ledgers.ListBySupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("listar asientos del proveedor: %w", err)
	}
	return list, nil
}

// Statement genera el estado de cuenta en PDF de un proveedor. Devuelve bytes y nombre de archivo.
func (uc *LedgerUseCase) Statement(ctx context.Context, userID, supplierID string) ([]byte, string, error) {
	supplier, err := uc.ownedSupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, "", err
	}
	entries, err := uc.ledgers.ListBySupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: listar asientos: %w", err)
	}
	deltas := make([]decimal.Decimal, 0, len(entries))
	for _, e := range entries {
		deltas = append(deltas, e.AmountDelta)
	}
	st := &Statement{
		Supplier:    *supplier,
		Entries:     entries,
		Balance:     ledger.Fold(deltas),
		GeneratedAt: uc.now(),
	}
	pdfBytes, err := uc.generator.GenerateStatementPDF(ctx, st)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("estado_cuenta_%s_%s.pdf", supplierID[:min(8, len(supplierID))], st.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

func (uc *LedgerUseCase) ownedSupplier(ctx context.Context, userID, supplierID string) (*entity.Supplier, error) {
	s, err := uc.suppliers.GetByID(ctx, userID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor: %w", err)
	}
	if s == nil {
		return nil, domain.NotFound(domain.EntitySupplier)
	}
	return s, nil
}
