package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.WarehouseRepository    = (*WarehouseRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.InventoryRepository    = (*InventoryRepo)(nil)
	_ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)
	_ repository.BundleRepository       = (*BundleRepo)(nil)
	_ repository.SupplierRepository     = (*SupplierRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
)

func page[T any](list []T, limit, offset int) []T {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ v view }

// NewCompanyRepository construye el repositorio.
func NewCompanyRepository(s *Store) *CompanyRepo { return &CompanyRepo{v: view{s: s}} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpCompanyCreate); err != nil {
		return err
	}
	if _, ok := d.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	d.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	d, done := r.v.read()
	defer done()
	c, ok := d.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ── Warehouses ───────────────────────────────────────────────────────────────

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ v view }

// NewWarehouseRepository construye el repositorio.
func NewWarehouseRepository(s *Store) *WarehouseRepo { return &WarehouseRepo{v: view{s: s}} }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpWarehouseCreate); err != nil {
		return err
	}
	if _, ok := d.companies[w.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	d.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	d, done := r.v.read()
	defer done()
	w, ok := d.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	d, done := r.v.read()
	defer done()
	var list []*entity.Warehouse
	for _, w := range d.warehouses {
		if w.CompanyID == companyID {
			list = append(list, &w)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria con la restricción UNIQUE(company_id, sku).
type ProductRepo struct{ v view }

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{v: view{s: s}} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpProductCreate); err != nil {
		return err
	}
	for _, existing := range d.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	p, ok := d.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	for _, p := range d.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	var list []*entity.Product
	for _, p := range d.products {
		if p.CompanyID == companyID {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return page(list, limit, offset), nil
}

func (r *ProductRepo) MarkAsBundle(_ context.Context, productID string) error {
	d, done := r.v.write()
	defer done()
	p, ok := d.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsBundle = true
	d.products[productID] = p
	return nil
}

// ── Inventory ────────────────────────────────────────────────────────────────

// InventoryRepo stock por par con CHECK quantity >= 0.
type InventoryRepo struct{ v view }

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(s *Store) *InventoryRepo { return &InventoryRepo{v: view{s: s}} }

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpInventoryCreate); err != nil {
		return err
	}
	if inv.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	pair := entity.StockPair{ProductID: inv.ProductID, WarehouseID: inv.WarehouseID}
	if _, ok := d.inventory[pair]; ok {
		return domain.ErrDuplicate
	}
	d.inventory[pair] = *inv
	return nil
}

// GetForUpdate no bloquea: el TxRunner ya serializa las transacciones.
func (r *InventoryRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	d, done := r.v.read()
	defer done()
	inv, ok := d.inventory[entity.StockPair{ProductID: productID, WarehouseID: warehouseID}]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpInventoryUpsert); err != nil {
		return err
	}
	if inv.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	d.inventory[entity.StockPair{ProductID: inv.ProductID, WarehouseID: inv.WarehouseID}] = *inv
	return nil
}

func (r *InventoryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Inventory, error) {
	d, done := r.v.read()
	defer done()
	var list []*entity.Inventory
	for pair, inv := range d.inventory {
		if pair.ProductID == productID {
			list = append(list, &inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list, nil
}

// InventoryLogRepo auditoría en memoria.
type InventoryLogRepo struct{ v view }

// NewInventoryLogRepository construye el repositorio.
func NewInventoryLogRepository(s *Store) *InventoryLogRepo { return &InventoryLogRepo{v: view{s: s}} }

func (r *InventoryLogRepo) Create(_ context.Context, l *entity.InventoryLog) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpLogCreate); err != nil {
		return err
	}
	d.logs = append(d.logs, *l)
	return nil
}

// ── Bundles ──────────────────────────────────────────────────────────────────

// BundleRepo composición de bundles.
type BundleRepo struct{ v view }

// NewBundleRepository construye el repositorio.
func NewBundleRepository(s *Store) *BundleRepo { return &BundleRepo{v: view{s: s}} }

func (r *BundleRepo) Upsert(_ context.Context, item *entity.BundleItem) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpBundleUpsert); err != nil {
		return err
	}
	d.bundles[bundleKey{item.ParentID, item.ChildID}] = *item
	return nil
}

func (r *BundleRepo) ListByParent(_ context.Context, parentID string) ([]*entity.BundleItem, error) {
	d, done := r.v.read()
	defer done()
	var list []*entity.BundleItem
	for k, it := range d.bundles {
		if k.parent == parentID {
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ChildID < list[j].ChildID })
	return list, nil
}

func (r *BundleRepo) IsChild(_ context.Context, productID string) (bool, error) {
	d, done := r.v.read()
	defer done()
	for k := range d.bundles {
		if k.child == productID {
			return true, nil
		}
	}
	return false, nil
}

// ── Suppliers ────────────────────────────────────────────────────────────────

// SupplierRepo proveedores y vínculos; a lo sumo un primario por producto.
type SupplierRepo struct{ v view }

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{v: view{s: s}} }

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	d, done := r.v.write()
	defer done()
	d.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	d, done := r.v.read()
	defer done()
	sup, ok := d.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	d, done := r.v.read()
	defer done()
	var list []*entity.Supplier
	for _, sup := range d.suppliers {
		if sup.CompanyID == companyID {
			list = append(list, &sup)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), nil
}

func (r *SupplierRepo) LinkProduct(_ context.Context, link *entity.SupplierProduct) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpSupplierLink); err != nil {
		return err
	}
	if link.IsPrimary {
		for k, l := range d.links {
			if l.ProductID == link.ProductID && l.IsPrimary && k.supplier != link.SupplierID {
				return domain.ErrConflict
			}
		}
	}
	d.links[linkKey{link.SupplierID, link.ProductID}] = *link
	return nil
}

func (r *SupplierRepo) ClearPrimary(_ context.Context, productID string) error {
	d, done := r.v.write()
	defer done()
	for k, l := range d.links {
		if l.ProductID == productID && l.IsPrimary {
			l.IsPrimary = false
			d.links[k] = l
		}
	}
	return nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

// SaleRepo historial de ventas.
type SaleRepo struct{ v view }

// NewSaleRepository construye el repositorio.
func NewSaleRepository(s *Store) *SaleRepo { return &SaleRepo{v: view{s: s}} }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	d, done := r.v.write()
	defer done()
	if err := r.v.s.fail(OpSaleCreate); err != nil {
		return err
	}
	if sale.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	d.sales = append(d.sales, *sale)
	return nil
}
