package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// MsgQuantityTooLarge la cantidad resultante no cabe en la columna de inventario.
const MsgQuantityTooLarge = "Resulting quantity exceeds the maximum allowed"

// StockMovementUseCase registra ventas y ajustes de stock.
// Cada operación bloquea la fila de inventario, valida que la cantidad no quede negativa,
// escribe el log de auditoría y confirma todo en una sola transacción.
type StockMovementUseCase struct {
	warehouses repository.WarehouseRepository
	tx         ports.TxRunner
	alerts     ports.AlertInvalidator
	now        func() time.Time
}

// NewStockMovementUseCase construye el caso de uso. alerts puede ser nil.
func NewStockMovementUseCase(warehouses repository.WarehouseRepository, tx ports.TxRunner, alerts ports.AlertInvalidator) *StockMovementUseCase {
	return &StockMovementUseCase{
		warehouses: warehouses,
		tx:         tx,
		alerts:     alerts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// movement parámetros comunes de venta y ajuste.
type movement struct {
	companyID   string
	productID   string
	warehouseID string
	change      int
	reason      string
	sale        *entity.Sale
}

// RegisterSale descuenta stock y registra la venta. sold_at por defecto es ahora.
func (uc *StockMovementUseCase) RegisterSale(ctx context.Context, companyID string, in dto.RegisterSaleRequest) (*dto.StockMovementResponse, error) {
	soldAt := uc.now()
	if in.SoldAt != nil {
		soldAt = in.SoldAt.UTC()
	}
	if soldAt.After(uc.now()) {
		return nil, domain.NewValidationError("sold_at cannot be in the future")
	}
	return uc.apply(ctx, movement{
		companyID:   companyID,
		productID:   in.ProductID,
		warehouseID: in.WarehouseID,
		change:      -in.Quantity,
		reason:      entity.LogReasonSale,
		sale: &entity.Sale{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			SoldAt:      soldAt,
		},
	})
}

// AdjustStock aplica un cambio con signo (recepción, merma, conteo). El resultado debe ser >= 0.
func (uc *StockMovementUseCase) AdjustStock(ctx context.Context, companyID string, in dto.StockAdjustmentRequest) (*dto.StockMovementResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.LogReasonAdjustment
	}
	return uc.apply(ctx, movement{
		companyID:   companyID,
		productID:   in.ProductID,
		warehouseID: in.WarehouseID,
		change:      in.Change,
		reason:      reason,
	})
}

func (uc *StockMovementUseCase) apply(ctx context.Context, m movement) (*dto.StockMovementResponse, error) {
	warehouse, err := uc.warehouses.GetByID(ctx, m.warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != m.companyID {
		return nil, domain.ErrNotFound
	}

	var result int
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetByID(ctx, m.productID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != m.companyID {
			return domain.ErrNotFound
		}

		inv, err := r.Inventory.GetForUpdate(ctx, m.productID, m.warehouseID)
		if err != nil {
			return err
		}
		current := 0
		if inv != nil {
			current = inv.Quantity
		}
		result = current + m.change
		if result < 0 {
			return domain.ErrInsufficientStock
		}
		if result > entity.MaxStockQuantity {
			return domain.NewValidationError(MsgQuantityTooLarge)
		}

		now := uc.now()
		if err := r.Inventory.Upsert(ctx, &entity.Inventory{
			ProductID:   m.productID,
			WarehouseID: m.warehouseID,
			Quantity:    result,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		if err := r.Logs.Create(ctx, &entity.InventoryLog{
			ID:           uuid.New().String(),
			ProductID:    m.productID,
			WarehouseID:  m.warehouseID,
			ChangeAmount: m.change,
			Reason:       m.reason,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		if m.sale != nil {
			return r.Sales.Create(ctx, m.sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.alerts != nil {
		if err := uc.alerts.Invalidate(ctx, m.companyID); err != nil {
			log.Warn().Err(err).Str("company_id", m.companyID).Msg("no se pudo invalidar el caché de alertas")
		}
	}
	return &dto.StockMovementResponse{ProductID: m.productID, WarehouseID: m.warehouseID, Quantity: result}, nil
}
