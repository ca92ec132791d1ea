package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain"
)

// StockMoveHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type StockMoveHandler struct {
	uc *inventory.StockMoveUseCase
}

// NewStockMoveHandler construye el handler.
func NewStockMoveHandler(uc *inventory.StockMoveUseCase) *StockMoveHandler {
	return &StockMoveHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  qtyDelta es la magnitud; el signo se deriva de reason. Una entrada IN a crédito
// @Description  con unitPrice genera también su factura BILL en la misma transacción.
// @Tags         stock-moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMoveRequest  true  "productId, qtyDelta, reason y referencias opcionales"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-moves [post]
func (h *StockMoveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockMoveRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out, "movimiento registrado")
}

// CreditPurchase godoc
// @Summary      Registrar compra a crédito
// @Description  Exige reason IN, payType CREDIT, supplierId y unitPrice.
// @Tags         stock-moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMoveRequest  true  "Compra a crédito"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-moves/credit-purchase [post]
func (h *StockMoveHandler) CreditPurchase(c *fiber.Ctx) error {
	var in dto.CreateStockMoveRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreditPurchaseFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, out, "compra a crédito registrada")
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock-moves
// @Security     Bearer
// @Produce      json
// @Param        productId    query  string  false  "UUID del producto"
// @Param        supplierId   query  string  false  "UUID del proveedor"
// @Param        customerId   query  string  false  "UUID del cliente"
// @Param        warehouseId  query  string  false  "UUID de la bodega"
// @Param        reason       query  string  false  "IN | OUT | ADJUST"
// @Param        startDate    query  string  false  "AAAA-MM-DD o RFC3339"
// @Param        endDate      query  string  false  "AAAA-MM-DD o RFC3339"
// @Success      200  {object}  dto.Envelope
// @Router       /api/stock-moves [get]
func (h *StockMoveHandler) List(c *fiber.Ctx) error {
	var q dto.StockMoveQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	filter, err := inventory.MoveFilterFromQuery(q)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), GetUserID(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockMoveResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromStockMoveDetail(d))
	}
	return ok(c, fiber.StatusOK, out, "")
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock-moves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-moves/{id} [get]
func (h *StockMoveHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityStockMove)
	if err != nil {
		return writeError(c, err)
	}
	d, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, dto.FromStockMoveDetail(d), "")
}
