package inventory

import (
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AlertInputs datos ya leídos para una empresa, listos para ensamblar alertas.
type AlertInputs struct {
	Candidates         []entity.LowStockCandidate
	RecentlySold       map[entity.StockPair]bool
	UnitsSold          map[entity.StockPair]int64
	SuppliersByProduct map[string][]entity.SupplierContact
	VelocityWindowDays int
}

// AssembleAlerts aplica el pipeline por fila: filtro de actividad → velocidad → proyección → proveedor.
// Los candidatos sin venta reciente se descartan. El resultado se ordena por ProductID y luego
// WarehouseID, y nunca es nil.
func AssembleAlerts(in AlertInputs) []entity.LowStockAlert {
	alerts := make([]entity.LowStockAlert, 0, len(in.Candidates))
	for _, c := range in.Candidates {
		pair := c.Pair()
		if !in.RecentlySold[pair] {
			continue
		}
		v := DailyVelocity(in.UnitsSold[pair], in.VelocityWindowDays)
		alerts = append(alerts, entity.LowStockAlert{
			LowStockCandidate: c,
			DailyVelocity:     v.PerDay(),
			DaysUntilStockout: ProjectStockout(c.Quantity, v),
			Supplier:          SelectPrimarySupplier(in.SuppliersByProduct[c.ProductID]),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].ProductID != alerts[j].ProductID {
			return alerts[i].ProductID < alerts[j].ProductID
		}
		return alerts[i].WarehouseID < alerts[j].WarehouseID
	})
	return alerts
}
