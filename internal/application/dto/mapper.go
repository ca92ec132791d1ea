package dto

import "github.com/jhoicas/stockledger/internal/domain/entity"

// Conversión de entidades de dominio a respuestas. Compartida por casos de uso y handlers.

func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		UnitCode:   p.UnitCode,
		CategoryID: p.CategoryID,
		CostPrice:  p.CostPrice,
		SalePrice:  p.SalePrice,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		AllowDebt: s.AllowDebt,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromCustomer(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromWarehouse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func FromUnit(u *entity.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Code: u.Code, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromParty(p *entity.PartySummary) *PartySummary {
	if p == nil {
		return nil
	}
	return &PartySummary{ID: p.ID, Name: p.Name}
}

func FromStockMoveDetail(d *entity.StockMoveDetail) StockMoveResponse {
	out := StockMoveResponse{
		ID:          d.ID,
		ProductID:   d.ProductID,
		WarehouseID: d.WarehouseID,
		QtyDelta:    d.QtyDelta,
		Reason:      string(d.Reason),
		SupplierID:  d.SupplierID,
		CustomerID:  d.CustomerID,
		UnitPrice:   d.UnitPrice,
		Note:        d.Note,
		CreatedAt:   d.CreatedAt,
		Product:     ProductSummary{ID: d.Product.ID, Name: d.Product.Name, UnitCode: d.Product.UnitCode},
		Supplier:    fromParty(d.Supplier),
		Customer:    fromParty(d.Customer),
	}
	if d.PayType != nil {
		pt := string(*d.PayType)
		out.PayType = &pt
	}
	return out
}

func FromPayableLedgerDetail(d *entity.PayableLedgerDetail) PayableLedgerResponse {
	out := PayableLedgerResponse{
		ID:          d.ID,
		SupplierID:  d.SupplierID,
		Type:        string(d.Type),
		AmountDelta: d.AmountDelta,
		Note:        d.Note,
		RefMoveID:   d.RefMoveID,
		CreatedAt:   d.CreatedAt,
		Supplier:    PartySummary{ID: d.Supplier.ID, Name: d.Supplier.Name},
	}
	if d.RefMove != nil {
		out.RefMove = &RefMoveSummary{
			ID:          d.RefMove.ID,
			ProductID:   d.RefMove.ProductID,
			ProductName: d.RefMove.ProductName,
			QtyDelta:    d.RefMove.QtyDelta,
			UnitPrice:   d.RefMove.UnitPrice,
		}
	}
	return out
}

// FromPayableLedger asiento sin detalle; el proveedor solo lleva su id.
func FromPayableLedger(l *entity.PayableLedger) PayableLedgerResponse {
	return PayableLedgerResponse{
		ID:          l.ID,
		SupplierID:  l.SupplierID,
		Type:        string(l.Type),
		AmountDelta: l.AmountDelta,
		Note:        l.Note,
		RefMoveID:   l.RefMoveID,
		CreatedAt:   l.CreatedAt,
		Supplier:    PartySummary{ID: l.SupplierID},
	}
}
