package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
)

// Mensajes de error expuestos al cliente.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgMissingToken       = "Missing bearer token"
	MsgInvalidToken       = "Invalid or expired token"
	MsgMissingRole        = "Missing role"
	MsgForbidden          = "Forbidden"
	MsgWarehouseNotFound  = "Warehouse not found"
	MsgProductNotFound    = "Product not found"
	MsgCompanyNotFound    = "Company not found"
	MsgSupplierNotFound   = "Supplier not found"
	MsgDuplicateSKU       = "SKU must be unique"
	MsgInsufficientStock  = "Insufficient stock"
	MsgCreateProductError = "Database error while creating product"
	MsgAlertsError        = "Database error while computing alerts"
	MsgInternal           = "Internal server error"
)

// errorJSON responde {"error": msg} con el status dado.
func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// internalError registra la causa y responde 500 sin detalle interno.
func internalError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("company_id", GetCompanyID(c)).
		Msg(msg)
	return errorJSON(c, fiber.StatusInternalServerError, msg)
}

// writeError mapea errores de dominio a HTTP. notFoundMsg se usa para domain.ErrNotFound.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorJSON(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrInsufficientStock):
		return errorJSON(c, fiber.StatusConflict, MsgInsufficientStock)
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "Conflict with current state")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, MsgForbidden)
	default:
		return internalError(c, err, MsgInternal)
	}
}

// ErrorHandler manejador de errores de Fiber con el mismo formato {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorJSON(c, fe.Code, fe.Message)
	}
	return internalError(c, err, MsgInternal)
}
