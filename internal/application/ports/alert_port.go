package ports

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AlertInvalidator descarta las alertas cacheadas de una empresa tras una escritura que las afecta.
type AlertInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// AlertCache caché de respuestas de alertas por empresa. Las fallas nunca deben tumbar la petición.
//
// Cada empresa tiene una generación que Invalidate incrementa. Set guarda la respuesta junto con la
// generación leída antes de calcularla, y Get solo la devuelve si esa generación sigue vigente.
type AlertCache interface {
	AlertInvalidator
	Generation(ctx context.Context, companyID string) (int64, error)
	Get(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, bool, error)
	Set(ctx context.Context, companyID string, generation int64, resp *dto.LowStockAlertsResponse) error
}

// ReorderSheetGenerator genera la hoja de reorden (PDF) a partir de las alertas.
type ReorderSheetGenerator interface {
	GenerateReorderSheet(
		ctx context.Context,
		company *entity.Company,
		alerts []entity.LowStockAlert,
		generatedAt time.Time,
	) ([]byte, error)
}
