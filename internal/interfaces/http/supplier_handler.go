package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// SupplierHandler maneja proveedores y su vínculo con productos (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err, MsgSupplierNotFound)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, MsgSupplierNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return internalError(c, err, MsgInternal)
	}
	return c.JSON(out)
}

// LinkProduct godoc
// @Summary      Vincular proveedor con producto
// @Description  is_primary=true desmarca el primario anterior del producto.
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                          true  "ID del proveedor"
// @Param        body  body  dto.LinkSupplierProductRequest  true  "Vínculo"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/products [post]
func (h *SupplierHandler) LinkProduct(c *fiber.Ctx) error {
	var in dto.LinkSupplierProductRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err, MsgSupplierNotFound)
	}
	if err := h.uc.LinkProduct(c.UserContext(), GetCompanyID(c), c.Params("id"), in); err != nil {
		return writeError(c, err, "Supplier or product not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
