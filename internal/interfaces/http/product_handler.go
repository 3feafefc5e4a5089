package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto con inventario inicial
// @Description  Valida en orden name, sku, price, warehouse_id; luego formato de precio, cantidad inicial y umbral.
// @Description  Producto, inventario y log se crean en una sola transacción.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Warehouse not found"
// @Failure      409   {object}  dto.ErrorResponse  "SKU must be unique"
// @Failure      500   {object}  dto.ErrorResponse  "Database error while creating product"
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, MsgInvalidBody)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return errorJSON(c, fiber.StatusBadRequest, verr.Message)
		case errors.Is(err, domain.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, MsgWarehouseNotFound)
		case errors.Is(err, domain.ErrDuplicate):
			return errorJSON(c, fiber.StatusConflict, MsgDuplicateSKU)
		default:
			return internalError(c, err, MsgCreateProductError)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID con stock por bodega
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return internalError(c, err, MsgInternal)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, MsgProductNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return internalError(c, err, MsgInternal)
	}
	return c.JSON(out)
}

// AddBundleItem godoc
// @Summary      Agregar componente a un bundle
// @Description  Los bundles no se anidan y no afectan el cálculo de stock bajo.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto padre"
// @Param        body  body  dto.AddBundleItemRequest  true  "Componente"
// @Success      201   {object}  dto.BundleItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/bundle-items [post]
func (h *ProductHandler) AddBundleItem(c *fiber.Ctx) error {
	var in dto.AddBundleItemRequest
	if err := parseAndValidate(c, &in); err != nil {
		return writeError(c, err, MsgProductNotFound)
	}
	out, err := h.uc.AddBundleItem(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, MsgProductNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBundleItems godoc
// @Summary      Listar componentes de un bundle
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto padre"
// @Success      200  {array}   dto.BundleItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/bundle-items [get]
func (h *ProductHandler) ListBundleItems(c *fiber.Ctx) error {
	out, err := h.uc.ListBundleItems(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, MsgProductNotFound)
	}
	return c.JSON(out)
}
