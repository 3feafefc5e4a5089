// Package inventory orquesta los casos de uso de stock: alertas de stock bajo, hoja de reorden,
// ventas y ajustes.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	stock "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// AlertWindows ventanas (en días) usadas por el cálculo de alertas.
type AlertWindows struct {
	ActivityDays int // ventas con sold_at >= now - ActivityDays cuentan como actividad reciente
	VelocityDays int // ventana de medición de la velocidad diaria
}

// LowStockUseCase calcula las alertas de stock bajo de una empresa.
// Lectura pura: catálogo → actividad → velocidad → proyección → proveedor → ensamblado.
type LowStockUseCase struct {
	companies repository.CompanyRepository
	reader    repository.AlertRepository
	cache     ports.AlertCache
	sheets    ports.ReorderSheetGenerator
	windows   AlertWindows
	now       func() time.Time
}

// LowStockOption configura el caso de uso.
type LowStockOption func(*LowStockUseCase)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) LowStockOption {
	return func(uc *LowStockUseCase) { uc.now = now }
}

// WithCache activa el caché de respuestas.
func WithCache(cache ports.AlertCache) LowStockOption {
	return func(uc *LowStockUseCase) { uc.cache = cache }
}

// WithReorderSheets activa la generación de la hoja de reorden en PDF.
func WithReorderSheets(g ports.ReorderSheetGenerator) LowStockOption {
	return func(uc *LowStockUseCase) { uc.sheets = g }
}

// NewLowStockUseCase construye el caso de uso de alertas.
func NewLowStockUseCase(
	companies repository.CompanyRepository,
	reader repository.AlertRepository,
	windows AlertWindows,
	opts ...LowStockOption,
) *LowStockUseCase {
	uc := &LowStockUseCase{
		companies: companies,
		reader:    reader,
		windows:   windows,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetLowStockAlerts devuelve las alertas de la empresa. Una empresa sin datos produce una lista vacía.
// Los fallos del caché se registran y se ignoran; los de la base se propagan.
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, error) {
	cacheable := false
	var generation int64
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, companyID)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("company_id", companyID).Msg("caché de alertas no disponible")
		case ok:
			return cached, nil
		default:
			// La generación se lee antes de calcular: una invalidación posterior deja esta entrada vencida.
			generation, err = uc.cache.Generation(ctx, companyID)
			if err != nil {
				log.Warn().Err(err).Str("company_id", companyID).Msg("caché de alertas no disponible")
			} else {
				cacheable = true
			}
		}
	}

	alerts, err := uc.computeAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := toAlertsResponse(alerts)

	if cacheable {
		if err := uc.cache.Set(ctx, companyID, generation, resp); err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo guardar alertas en caché")
		}
	}
	return resp, nil
}

// ReorderSheet genera la hoja de reorden (PDF) con las alertas actuales de la empresa.
// Devuelve domain.ErrNotFound si la empresa no existe.
func (uc *LowStockUseCase) ReorderSheet(ctx context.Context, companyID string) ([]byte, error) {
	if uc.sheets == nil {
		return nil, fmt.Errorf("hoja de reorden no configurada")
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	alerts, err := uc.computeAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.sheets.GenerateReorderSheet(ctx, company, alerts, uc.now())
}

func (uc *LowStockUseCase) computeAlerts(ctx context.Context, companyID string) ([]entity.LowStockAlert, error) {
	candidates, err := uc.reader.ListLowStockCandidates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("low-stock candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []entity.LowStockAlert{}, nil
	}

	now := uc.now()
	in := stock.AlertInputs{Candidates: candidates, VelocityWindowDays: uc.windows.VelocityDays}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recent, err := uc.reader.ListRecentlySoldPairs(gctx, companyID, stock.ActivityWindowStart(now, uc.windows.ActivityDays))
		if err != nil {
			return fmt.Errorf("recent sales: %w", err)
		}
		in.RecentlySold = recent
		return nil
	})
	g.Go(func() error {
		units, err := uc.reader.SumUnitsSold(gctx, companyID, stock.ActivityWindowStart(now, uc.windows.VelocityDays), now)
		if err != nil {
			return fmt.Errorf("units sold: %w", err)
		}
		in.UnitsSold = units
		return nil
	})
	g.Go(func() error {
		suppliers, err := uc.reader.ListProductSuppliers(gctx, companyID)
		if err != nil {
			return fmt.Errorf("product suppliers: %w", err)
		}
		in.SuppliersByProduct = suppliers
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stock.AssembleAlerts(in), nil
}

func toAlertsResponse(alerts []entity.LowStockAlert) *dto.LowStockAlertsResponse {
	items := make([]dto.LowStockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		item := dto.LowStockAlertDTO{
			ProductID:         a.ProductID,
			ProductName:       a.ProductName,
			SKU:               a.SKU,
			WarehouseID:       a.WarehouseID,
			WarehouseName:     a.WarehouseName,
			CurrentStock:      a.Quantity,
			Threshold:         a.Threshold,
			DaysUntilStockout: a.DaysUntilStockout,
		}
		if a.Supplier != nil {
			item.Supplier = &dto.AlertSupplierDTO{
				ID:           a.Supplier.SupplierID,
				Name:         a.Supplier.Name,
				ContactEmail: a.Supplier.ContactEmail,
			}
		}
		items = append(items, item)
	}
	return &dto.LowStockAlertsResponse{Alerts: items, TotalAlerts: len(items)}
}
