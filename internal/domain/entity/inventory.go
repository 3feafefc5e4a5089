package entity

import "time"

// Inventory stock actual de un producto en una bodega. Clave compuesta (ProductID, WarehouseID).
type Inventory struct {
	ProductID   string
	WarehouseID string
	Quantity    int // nunca negativo (CHECK en la tabla)
	UpdatedAt   time.Time
}

// Motivos de un registro de auditoría de inventario.
const (
	LogReasonInitialStock = "initial_stock"
	LogReasonSale         = "sale"
	LogReasonAdjustment   = "adjustment"
)

// InventoryLog registro de auditoría de un cambio de cantidad.
type InventoryLog struct {
	ID           string
	ProductID    string
	WarehouseID  string
	ChangeAmount int // positivo entrada, negativo salida
	Reason       string
	CreatedAt    time.Time
}
