// Package memory implementa los puertos de persistencia en memoria: modo demo (APP_STORAGE=memory)
// y doble de pruebas de los casos de uso y handlers. Las escrituras se serializan; una transacción
// trabaja sobre una copia del estado que solo se publica al confirmar.
package memory

import (
	"sync"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Operaciones en las que se puede inyectar un fallo con FailOn.
const (
	OpCompanyCreate   = "companies.create"
	OpWarehouseCreate = "warehouses.create"
	OpProductCreate   = "products.create"
	OpInventoryCreate = "inventory.create"
	OpInventoryUpsert = "inventory.upsert"
	OpLogCreate       = "inventory_logs.create"
	OpSaleCreate      = "sales.create"
	OpBundleUpsert    = "bundle_items.upsert"
	OpSupplierLink    = "supplier_products.link"
	OpAlertRead       = "alerts.read"
)

type bundleKey struct{ parent, child string }

type linkKey struct{ supplier, product string }

type state struct {
	companies  map[string]entity.Company
	warehouses map[string]entity.Warehouse
	products   map[string]entity.Product
	inventory  map[entity.StockPair]entity.Inventory
	logs       []entity.InventoryLog
	bundles    map[bundleKey]entity.BundleItem
	suppliers  map[string]entity.Supplier
	links      map[linkKey]entity.SupplierProduct
	sales      []entity.Sale
}

func newState() state {
	return state{
		companies:  map[string]entity.Company{},
		warehouses: map[string]entity.Warehouse{},
		products:   map[string]entity.Product{},
		inventory:  map[entity.StockPair]entity.Inventory{},
		bundles:    map[bundleKey]entity.BundleItem{},
		suppliers:  map[string]entity.Supplier{},
		links:      map[linkKey]entity.SupplierProduct{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.bundles {
		c.bundles[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	c.logs = append([]entity.InventoryLog(nil), s.logs...)
	c.sales = append([]entity.Sale(nil), s.sales...)
	return c
}

// Store estado compartido por todos los repositorios en memoria.
// writeMu serializa escritores (transacciones y escrituras sueltas); mu protege data para lectores.
type Store struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	data     state
	failMu   sync.Mutex
	failures map[string]error
}

// view es el estado sobre el que opera un repositorio: el confirmado, o la copia de una transacción.
type view struct {
	s  *Store
	tx *state
}

func (v view) read() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.s.mu.RLock()
	return &v.s.data, v.s.mu.RUnlock
}

func (v view) write() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.s.writeMu.Lock()
	v.s.mu.Lock()
	return &v.s.data, func() {
		v.s.mu.Unlock()
		v.s.writeMu.Unlock()
	}
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// FailOn hace que la operación op devuelva err (nil la restablece).
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// Inventory devuelve la fila de inventario del par, si existe.
func (s *Store) Inventory(productID, warehouseID string) (entity.Inventory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.data.inventory[entity.StockPair{ProductID: productID, WarehouseID: warehouseID}]
	return inv, ok
}

// Logs devuelve una copia del log de auditoría.
func (s *Store) Logs() []entity.InventoryLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.InventoryLog(nil), s.data.logs...)
}

// Sales devuelve una copia del historial de ventas.
func (s *Store) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Sale(nil), s.data.sales...)
}

// ProductCount número de productos persistidos.
func (s *Store) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.products)
}

// InventoryCount número de filas de inventario.
func (s *Store) InventoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.inventory)
}
