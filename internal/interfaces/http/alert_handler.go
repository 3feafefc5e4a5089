package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
)

// AlertHandler expone las alertas de stock bajo de una empresa (protegido, tenant del token).
type AlertHandler struct {
	uc *inventory.LowStockUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.LowStockUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Pares producto/bodega con quantity <= low_stock_threshold y al menos una venta en la ventana de actividad.
// @Description  days_until_stockout = 99 es un centinela: sin ventas en la ventana de velocidad no hay proyección.
// @Description  supplier es null si el producto no tiene proveedores. Orden: product_id, warehouse_id.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        company_id  path  string  true  "ID de la empresa (debe coincidir con el token)"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse  "Database error while computing alerts"
// @Router       /api/companies/{company_id}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStockAlerts(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return internalError(c, err, MsgAlertsError)
	}
	return c.JSON(out)
}

// ReorderSheet godoc
// @Summary      Hoja de reorden en PDF
// @Description  Las mismas alertas de stock bajo, en una hoja A4 con el proveedor a contactar.
// @Tags         alerts
// @Security     Bearer
// @Produce      application/pdf
// @Param        company_id  path  string  true  "ID de la empresa (debe coincidir con el token)"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock/pdf [get]
func (h *AlertHandler) ReorderSheet(c *fiber.Ctx) error {
	companyID := c.Params("company_id")
	doc, err := h.uc.ReorderSheet(c.UserContext(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, MsgCompanyNotFound)
		}
		return internalError(c, err, MsgAlertsError)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="reorden-%s.pdf"`, companyID))
	return c.Send(doc)
}
