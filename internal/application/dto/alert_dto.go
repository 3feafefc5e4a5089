package dto

// AlertSupplierDTO proveedor primario para reorden.
type AlertSupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO una alerta por par producto/bodega.
// DaysUntilStockout = 99 es un centinela (sin ventas en la ventana de velocidad), no una estimación.
// Supplier es null si el producto no tiene proveedores vinculados.
type LowStockAlertDTO struct {
	ProductID         string            `json:"product_id"`
	ProductName       string            `json:"product_name"`
	SKU               string            `json:"sku"`
	WarehouseID       string            `json:"warehouse_id"`
	WarehouseName     string            `json:"warehouse_name"`
	CurrentStock      int               `json:"current_stock"`
	Threshold         int               `json:"threshold"`
	DaysUntilStockout int               `json:"days_until_stockout"`
	Supplier          *AlertSupplierDTO `json:"supplier"`
}

// LowStockAlertsResponse salida de GET /api/companies/{company_id}/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
