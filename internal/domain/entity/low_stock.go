package entity

import "github.com/shopspring/decimal"

// StockPair identifica un par producto/bodega.
type StockPair struct {
	ProductID   string
	WarehouseID string
}

// LowStockCandidate fila del lector de catálogo: producto con inventario en o bajo su umbral.
type LowStockCandidate struct {
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseID   string
	WarehouseName string
	Quantity      int
	Threshold     int
}

// Pair devuelve la clave producto/bodega del candidato.
func (c LowStockCandidate) Pair() StockPair {
	return StockPair{ProductID: c.ProductID, WarehouseID: c.WarehouseID}
}

// SupplierContact proveedor vinculado a un producto, con la marca de primario.
type SupplierContact struct {
	ProductID    string
	SupplierID   string
	Name         string
	ContactEmail string
	IsPrimary    bool
}

// LowStockAlert alerta ensamblada para un par producto/bodega.
// Supplier es nil si el producto no tiene proveedores vinculados.
type LowStockAlert struct {
	LowStockCandidate
	DailyVelocity     decimal.Decimal
	DaysUntilStockout int
	Supplier          *SupplierContact
}
