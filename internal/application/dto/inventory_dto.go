package dto

import "time"

// RegisterSaleRequest body de POST /api/sales.
type RegisterSaleRequest struct {
	ProductID   string     `json:"product_id" validate:"required"`
	WarehouseID string     `json:"warehouse_id" validate:"required"`
	Quantity    int        `json:"quantity" validate:"gt=0,max=2147483647"`
	SoldAt      *time.Time `json:"sold_at,omitempty"`
}

// StockAdjustmentRequest body de POST /api/inventory/adjustments. Change es con signo.
type StockAdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Change      int    `json:"change" validate:"ne=0,min=-2147483647,max=2147483647"`
	Reason      string `json:"reason" validate:"omitempty,max=50"`
}

// StockMovementResponse cantidad resultante tras una venta o ajuste.
type StockMovementResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}
