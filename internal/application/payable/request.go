package payable

import (
	"context"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// RecordFromRequest adapta el request HTTP a Record.
func (uc *LedgerUseCase) RecordFromRequest(ctx context.Context, userID string, in dto.CreatePayableLedgerRequest) (*dto.PayableLedgerResponse, error) {
	d, err := uc.Record(ctx, userID, LedgerInput{
		SupplierID: in.SupplierID,
		Type:       entity.LedgerType(in.Type),
		Amount:     in.AmountDelta,
		Note:       in.Note,
		RefMoveID:  in.RefMoveID,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromPayableLedgerDetail(d)
	return &out, nil
}

// LedgerFilterFromQuery convierte los query params en repository.LedgerFilter.
func LedgerFilterFromQuery(q dto.PayableLedgerQuery) (repository.LedgerFilter, error) {
	from, err := inventory.ParseDate(q.StartDate, false)
	if err != nil {
		return repository.LedgerFilter{}, err
	}
	to, err := inventory.ParseDate(q.EndDate, true)
	if err != nil {
		return repository.LedgerFilter{}, err
	}
	return repository.LedgerFilter{
		SupplierID: q.SupplierID,
		Type:       entity.LedgerType(q.Type),
		From:       from,
		To:         to,
	}, nil
}
