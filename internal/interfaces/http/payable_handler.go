package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/domain"
)

// PayableHandler asientos de cuentas por pagar (protegido).
type PayableHandler struct {
	uc *payable.LedgerUseCase
}

// NewPayableHandler construye el handler.
func NewPayableHandler(uc *payable.LedgerUseCase) *PayableHandler {
	return &PayableHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar asiento de cuentas por pagar
// @Description  amountDelta es la magnitud; BILL suma deuda, PAYMENT y ADJUST la restan.
// @Tags         payable-ledgers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayableLedgerRequest  true  "supplierId, type, amountDelta"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payable-ledgers [post]
func (h *PayableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePayableLedgerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out, "asiento registrado")
}

// List godoc
// @Summary      Listar asientos
// @Tags         payable-ledgers
// @Security     Bearer
// @Produce      json
// @Param        supplierId  query  string  false  "UUID del proveedor"
// @Param        type        query  string  false  "BILL | PAYMENT | ADJUST"
// @Param        startDate   query  string  false  "AAAA-MM-DD o RFC3339"
// @Param        endDate     query  string  false  "AAAA-MM-DD o RFC3339"
// @Success      200  {object}  dto.Envelope
// @Router       /api/payable-ledgers [get]
func (h *PayableHandler) List(c *fiber.Ctx) error {
	var q dto.PayableLedgerQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	filter, err := payable.LedgerFilterFromQuery(q)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), GetUserID(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PayableLedgerResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromPayableLedgerDetail(d))
	}
	return ok(c, fiber.StatusOK, out, "")
}

// GetByID godoc
// @Summary      Obtener asiento por ID
// @Tags         payable-ledgers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payable-ledgers/{id} [get]
func (h *PayableHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityPayableLedger)
	if err != nil {
		return writeError(c, err)
	}
	d, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, dto.FromPayableLedgerDetail(d), "")
}
