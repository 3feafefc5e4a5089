package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	stock "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo lecturas de alertas con la misma semántica que las consultas SQL.
type AlertRepo struct{ v view }

// NewAlertRepository construye el repositorio de lectura.
func NewAlertRepository(s *Store) *AlertRepo { return &AlertRepo{v: view{s: s}} }

func (r *AlertRepo) ListLowStockCandidates(_ context.Context, companyID string) ([]entity.LowStockCandidate, error) {
	d, done := r.v.read()
	defer done()
	if err := r.v.s.fail(OpAlertRead); err != nil {
		return nil, err
	}
	list := []entity.LowStockCandidate{}
	for pair, inv := range d.inventory {
		p, ok := d.products[pair.ProductID]
		if !ok || p.CompanyID != companyID {
			continue
		}
		w, ok := d.warehouses[pair.WarehouseID]
		if !ok || w.CompanyID != companyID {
			continue
		}
		if inv.Quantity > p.LowStockThreshold {
			continue
		}
		list = append(list, entity.LowStockCandidate{
			ProductID:     p.ID,
			ProductName:   p.Name,
			SKU:           p.SKU,
			WarehouseID:   w.ID,
			WarehouseName: w.Name,
			Quantity:      inv.Quantity,
			Threshold:     p.LowStockThreshold,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].WarehouseID < list[j].WarehouseID
	})
	return list, nil
}

func (r *AlertRepo) ListRecentlySoldPairs(_ context.Context, companyID string, since time.Time) (map[entity.StockPair]bool, error) {
	d, done := r.v.read()
	defer done()
	out := map[entity.StockPair]bool{}
	for _, sale := range d.sales {
		if !d.ownsProduct(companyID, sale.ProductID) || !stock.SoldSince(sale.SoldAt, since) {
			continue
		}
		out[entity.StockPair{ProductID: sale.ProductID, WarehouseID: sale.WarehouseID}] = true
	}
	return out, nil
}

func (r *AlertRepo) SumUnitsSold(_ context.Context, companyID string, from, to time.Time) (map[entity.StockPair]int64, error) {
	d, done := r.v.read()
	defer done()
	out := map[entity.StockPair]int64{}
	for _, sale := range d.sales {
		if !d.ownsProduct(companyID, sale.ProductID) || !stock.InWindow(sale.SoldAt, from, to) {
			continue
		}
		out[entity.StockPair{ProductID: sale.ProductID, WarehouseID: sale.WarehouseID}] += int64(sale.Quantity)
	}
	return out, nil
}

func (r *AlertRepo) ListProductSuppliers(_ context.Context, companyID string) (map[string][]entity.SupplierContact, error) {
	d, done := r.v.read()
	defer done()
	out := map[string][]entity.SupplierContact{}
	for _, l := range d.links {
		if !d.ownsProduct(companyID, l.ProductID) {
			continue
		}
		sup, ok := d.suppliers[l.SupplierID]
		if !ok {
			continue
		}
		out[l.ProductID] = append(out[l.ProductID], entity.SupplierContact{
			ProductID:    l.ProductID,
			SupplierID:   sup.ID,
			Name:         sup.Name,
			ContactEmail: sup.ContactEmail,
			IsPrimary:    l.IsPrimary,
		})
	}
	for pid := range out {
		contacts := out[pid]
		sort.Slice(contacts, func(i, j int) bool { return contacts[i].SupplierID < contacts[j].SupplierID })
	}
	return out, nil
}

func (d *state) ownsProduct(companyID, productID string) bool {
	p, ok := d.products[productID]
	return ok && p.CompanyID == companyID
}
