package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// RecordFromRequest adapta el request HTTP al caso de uso Record(ctx, userID, MoveInput).
func (uc *StockMoveUseCase) RecordFromRequest(ctx context.Context, userID string, in dto.CreateStockMoveRequest) (*dto.StockMoveResponse, error) {
	d, err := uc.Record(ctx, userID, moveInputFromRequest(in))
	if err != nil {
		return nil, err
	}
	out := dto.FromStockMoveDetail(d)
	return &out, nil
}

// CreditPurchaseFromRequest adapta el request HTTP a RecordCreditPurchase.
func (uc *StockMoveUseCase) CreditPurchaseFromRequest(ctx context.Context, userID string, in dto.CreateStockMoveRequest) (*dto.StockMoveResponse, error) {
	d, err := uc.RecordCreditPurchase(ctx, userID, moveInputFromRequest(in))
	if err != nil {
		return nil, err
	}
	out := dto.FromStockMoveDetail(d)
	return &out, nil
}

func moveInputFromRequest(in dto.CreateStockMoveRequest) MoveInput {
	input := MoveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Qty:         in.QtyDelta,
		Reason:      entity.MoveReason(in.Reason),
		SupplierID:  in.SupplierID,
		CustomerID:  in.CustomerID,
		UnitPrice:   in.UnitPrice,
		Note:        in.Note,
	}
	if in.PayType != nil && *in.PayType != "" {
		pt := entity.PayType(*in.PayType)
		input.PayType = &pt
	}
	return input
}

// MoveFilterFromQuery convierte los query params en repository.MoveFilter.
func MoveFilterFromQuery(q dto.StockMoveQuery) (repository.MoveFilter, error) {
	from, err := ParseDate(q.StartDate, false)
	if err != nil {
		return repository.MoveFilter{}, err
	}
	to, err := ParseDate(q.EndDate, true)
	if err != nil {
		return repository.MoveFilter{}, err
	}
	return repository.MoveFilter{
		ProductID:   q.ProductID,
		SupplierID:  q.SupplierID,
		CustomerID:  q.CustomerID,
		WarehouseID: q.WarehouseID,
		Reason:      entity.MoveReason(q.Reason),
		From:        from,
		To:          to,
	}, nil
}

// ParseDate acepta RFC3339 o AAAA-MM-DD. Con endOfDay, una fecha sin hora cubre el día completo.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.Invalid("fecha inválida: " + s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
