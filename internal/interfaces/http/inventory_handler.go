package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// InventoryHandler maneja ventas y ajustes de stock (protegido).
type InventoryHandler struct {
	uc *inventory.StockMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock del par producto/bodega, escribe el log de auditoría y la venta en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venta"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Insufficient stock"
// @Router       /api/sales [post]
func (h *InventoryHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err, "Product or warehouse not found")
	}
	out, err := h.uc.RegisterSale(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "Product or warehouse not found")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  change con signo; el stock resultante no puede quedar negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Insufficient stock"
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err, "Product or warehouse not found")
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "Product or warehouse not found")
	}
	return c.JSON(out)
}
