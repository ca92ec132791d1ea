package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/balance"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/domain"
)

// SupplierHandler maneja proveedores y sus cuentas por pagar (protegido).
type SupplierHandler struct {
	uc         *usecase.SupplierUseCase
	ledgers    *payable.LedgerUseCase
	aggregator *balance.Aggregator
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase, ledgers *payable.LedgerUseCase, aggregator *balance.Aggregator) *SupplierHandler {
	return &SupplierHandler{uc: uc, ledgers: ledgers, aggregator: aggregator}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out, "proveedor creado")
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        active  query  string  false  "true | false"
// @Success      200     {object}  dto.Envelope
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	filter, err := partyFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "proveedor actualizado")
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Description  Si el proveedor tiene movimientos solo se desactiva.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Payables godoc
// @Summary      Historial de cuentas por pagar del proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/payables [get]
func (h *SupplierHandler) Payables(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.ledgers.ListBySupplier(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PayableLedgerResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.FromPayableLedger(l))
	}
	return ok(c, fiber.StatusOK, out, "")
}

// PayableBalance godoc
// @Summary      Saldo por pagar al proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/payable-balance [get]
func (h *SupplierHandler) PayableBalance(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.aggregator.PayableBalance(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Statement godoc
// @Summary      Estado de cuenta del proveedor en PDF
// @Tags         suppliers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/statement.pdf [get]
func (h *SupplierHandler) Statement(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntitySupplier)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.ledgers.Statement(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}
