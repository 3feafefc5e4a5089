package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AlertRepository consultas de solo lectura para el cálculo de alertas de stock bajo.
// Todas filtran por empresa; una empresa desconocida produce resultados vacíos, no error.
type AlertRepository interface {
	// ListLowStockCandidates devuelve los pares producto/bodega con fila de inventario
	// y quantity <= low_stock_threshold (inner join: sin fila de inventario no hay candidato).
	ListLowStockCandidates(ctx context.Context, companyID string) ([]entity.LowStockCandidate, error)

	// ListRecentlySoldPairs devuelve los pares con al menos una venta con sold_at >= since.
	ListRecentlySoldPairs(ctx context.Context, companyID string, since time.Time) (map[entity.StockPair]bool, error)

	// SumUnitsSold devuelve las unidades vendidas por par en [from, to].
	SumUnitsSold(ctx context.Context, companyID string, from, to time.Time) (map[entity.StockPair]int64, error)

	// ListProductSuppliers devuelve todos los vínculos proveedor↔producto de la empresa, agrupados por producto.
	ListProductSuppliers(ctx context.Context, companyID string) (map[string][]entity.SupplierContact, error)
}
