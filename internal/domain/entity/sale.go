package entity

import "time"

// Sale venta histórica de un producto en una bodega.
type Sale struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int
	SoldAt      time.Time
}
