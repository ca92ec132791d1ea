package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/validation"
	"github.com/jhoicas/stockledger/internal/domain"
)

// Códigos de error devueltos en ErrorResponse.Code.
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeInternal     = "INTERNAL"
)

var errInvalidBody = errors.New("cuerpo inválido")

func ok(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data, Message: message})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// writeError traduce los errores de dominio a status HTTP. Es el único punto que lo hace.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidBody) {
		return fail(c, fiber.StatusBadRequest, CodeInvalidBody, err.Error())
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		out := dto.ErrorResponse{Code: CodeValidation, Message: "datos inválidos", Errors: make([]dto.FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			out.Errors = append(out.Errors, dto.FieldError{Field: fe.Field, Rule: fe.Rule, Message: fe.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(out)
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, CodeForbidden, "cuenta inactiva")
	}
	c.Locals(localError, err)
	return fail(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
}

// parseBody decodifica el JSON y lo valida. Los errores se responden con writeError.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validation.Struct(out)
}

// parseQuery decodifica y valida los query params.
func parseQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Invalid("parámetros inválidos")
	}
	return validation.Struct(out)
}

// pathID devuelve el :id validado como UUID. Un id mal formado se responde como no encontrado.
func pathID(c *fiber.Ctx, entity string) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NotFound(entity)
	}
	return id, nil
}
