package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// Mensajes de validación de creación de producto (se devuelven tal cual al cliente).
const (
	MsgInvalidPrice       = "Invalid price format"
	MsgNegativeQuantity   = "Initial quantity cannot be negative"
	MsgNegativeThreshold  = "Low stock threshold cannot be negative"
	MsgQuantityTooLarge   = "Initial quantity exceeds the maximum allowed"
	MsgThresholdTooLarge  = "Low stock threshold exceeds the maximum allowed"
	maxPriceIntegerDigits = 10 // NUMERIC(12,2)
)

var maxPrice = decimal.New(1, maxPriceIntegerDigits)

// ProductUseCase casos de uso del catálogo de productos.
// Create es una unidad de trabajo: producto + inventario inicial + log, o nada.
type ProductUseCase struct {
	products         repository.ProductRepository
	warehouses       repository.WarehouseRepository
	stock            repository.InventoryRepository
	bundles          repository.BundleRepository
	tx               ports.TxRunner
	alerts           ports.AlertInvalidator
	defaultThreshold int
}

// NewProductUseCase construye el caso de uso. alerts puede ser nil (sin caché).
func NewProductUseCase(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	stock repository.InventoryRepository,
	bundles repository.BundleRepository,
	tx ports.TxRunner,
	alerts ports.AlertInvalidator,
	defaultThreshold int,
) *ProductUseCase {
	return &ProductUseCase{
		products:         products,
		warehouses:       warehouses,
		stock:            stock,
		bundles:          bundles,
		tx:               tx,
		alerts:           alerts,
		defaultThreshold: defaultThreshold,
	}
}

// newProductInput request ya validado y tipado.
type newProductInput struct {
	Name        string
	SKU         string
	Price       decimal.Decimal
	WarehouseID string
	Quantity    int
	Threshold   int
}

// validateCreateProduct aplica las validaciones en orden: requeridos (name, sku, price, warehouse_id),
// formato de precio, cantidad inicial y umbral. Los largos y rangos siguen los de la tabla.
// Ninguna toca la base.
func (uc *ProductUseCase) validateCreateProduct(in dto.CreateProductRequest) (*newProductInput, error) {
	name := trimmed(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(name) > entity.MaxProductNameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("name must be at most %d characters", entity.MaxProductNameLength))
	}
	sku := trimmed(in.SKU)
	if sku == "" {
		return nil, domain.NewValidationError("sku is required")
	}
	if utf8.RuneCountInString(sku) > entity.MaxSKULength {
		return nil, domain.NewValidationError(fmt.Sprintf("sku must be at most %d characters", entity.MaxSKULength))
	}
	if isAbsent(in.Price) {
		return nil, domain.NewValidationError("price is required")
	}
	warehouseID := trimmed(in.WarehouseID)
	if warehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id is required")
	}

	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, domain.NewValidationError(MsgInvalidPrice)
	}

	quantity := 0
	if in.InitialQuantity != nil {
		quantity = *in.InitialQuantity
	}
	if quantity < 0 {
		return nil, domain.NewValidationError(MsgNegativeQuantity)
	}
	if quantity > entity.MaxStockQuantity {
		return nil, domain.NewValidationError(MsgQuantityTooLarge)
	}

	threshold := uc.defaultThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if threshold < 0 {
		return nil, domain.NewValidationError(MsgNegativeThreshold)
	}
	if threshold > entity.MaxStockQuantity {
		return nil, domain.NewValidationError(MsgThresholdTooLarge)
	}

	return &newProductInput{
		Name:        name,
		SKU:         sku,
		Price:       price,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		Threshold:   threshold,
	}, nil
}

// ParsePrice interpreta un precio JSON (string o número) como decimal exacto.
// Rechaza negativos, más de dos decimales y valores fuera de NUMERIC(12,2).
func ParsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		text = strings.TrimSpace(s)
	}
	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() || !price.Equal(price.Round(2)) || !price.LessThan(maxPrice) {
		return decimal.Zero, fmt.Errorf("precio fuera de rango: %s", text)
	}
	return price.Round(2), nil
}

// Create valida el request y crea el producto con su inventario inicial en una sola transacción.
// Errores: *domain.ValidationError (400), domain.ErrNotFound si la bodega no es de la empresa (404),
// domain.ErrDuplicate si el pre-chequeo encuentra el SKU (409), domain.ErrPersistence si la transacción
// falla, incluida la violación de unicidad por una creación concurrente (500).
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, req dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	in, err := uc.validateCreateProduct(req)
	if err != nil {
		return nil, err
	}

	warehouse, err := uc.warehouses.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.products.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               in.SKU,
		Name:              in.Name,
		Price:             in.Price,
		LowStockThreshold: in.Threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		if err := r.Inventory.Create(ctx, &entity.Inventory{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			Quantity:    in.Quantity,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		if in.Quantity == 0 {
			return nil
		}
		return r.Logs.Create(ctx, &entity.InventoryLog{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			WarehouseID:  warehouse.ID,
			ChangeAmount: in.Quantity,
			Reason:       entity.LogReasonInitialStock,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	invalidateAlerts(ctx, uc.alerts, companyID)
	return &dto.CreateProductResponse{Message: "Product created", ProductID: product.ID}, nil
}

// GetByID obtiene un producto de la empresa con su stock por bodega. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	levels, err := uc.stock.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	resp.Stock = make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		resp.Stock = append(resp.Stock, dto.StockLevelResponse{WarehouseID: l.WarehouseID, Quantity: l.Quantity})
	}
	return resp, nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AddBundleItem agrega (o actualiza) un componente al bundle parentID y marca al padre como bundle.
func (uc *ProductUseCase) AddBundleItem(ctx context.Context, companyID, parentID string, in dto.AddBundleItemRequest) (*dto.BundleItemResponse, error) {
	item := &entity.BundleItem{ParentID: parentID, ChildID: in.ChildID, Quantity: in.Quantity}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		parent, err := r.Products.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		if parent == nil || parent.CompanyID != companyID {
			return domain.ErrNotFound
		}
		child, err := r.Products.GetByID(ctx, in.ChildID)
		if err != nil {
			return err
		}
		if child == nil {
			return domain.ErrNotFound
		}
		parentIsChild, err := r.Bundles.IsChild(ctx, parent.ID)
		if err != nil {
			return err
		}
		if err := inventory.ValidateBundleItem(parent, child, in.Quantity, parentIsChild); err != nil {
			return err
		}
		if err := r.Bundles.Upsert(ctx, item); err != nil {
			return err
		}
		if parent.IsBundle {
			return nil
		}
		return r.Products.MarkAsBundle(ctx, parent.ID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.BundleItemResponse{ParentID: item.ParentID, ChildID: item.ChildID, Quantity: item.Quantity}, nil
}

// ListBundleItems lista los componentes de un bundle de la empresa.
func (uc *ProductUseCase) ListBundleItems(ctx context.Context, companyID, parentID string) ([]dto.BundleItemResponse, error) {
	parent, err := uc.products.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.bundles.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BundleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BundleItemResponse{ParentID: it.ParentID, ChildID: it.ChildID, Quantity: it.Quantity})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		SKU:               p.SKU,
		Name:              p.Name,
		Price:             p.Price,
		LowStockThreshold: p.LowStockThreshold,
		IsBundle:          p.IsBundle,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func isAbsent(raw json.RawMessage) bool {
	t := strings.TrimSpace(string(raw))
	return t == "" || t == "null"
}

// invalidateAlerts descarta el caché de alertas; un fallo solo se registra.
func invalidateAlerts(ctx context.Context, alerts ports.AlertInvalidator, companyID string) {
	if alerts == nil {
		return
	}
	if err := alerts.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar el caché de alertas")
	}
}
