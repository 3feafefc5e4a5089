package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body de POST /api/products.
// Los campos son punteros para distinguir "ausente" de "vacío"; price se recibe crudo
// (string o número JSON) y se interpreta como decimal exacto.
type CreateProductRequest struct {
	Name              *string         `json:"name"`
	SKU               *string         `json:"sku"`
	Price             json.RawMessage `json:"price" swaggertype:"string" example:"19.99"`
	WarehouseID       *string         `json:"warehouse_id"`
	InitialQuantity   *int            `json:"initial_quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// CreateProductResponse salida de POST /api/products.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
}

// StockLevelResponse stock de un producto en una bodega.
type StockLevelResponse struct {
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string               `json:"id"`
	CompanyID         string               `json:"company_id"`
	SKU               string               `json:"sku"`
	Name              string               `json:"name"`
	Price             decimal.Decimal      `json:"price"`
	LowStockThreshold int                  `json:"low_stock_threshold"`
	IsBundle          bool                 `json:"is_bundle"`
	Stock             []StockLevelResponse `json:"stock,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddBundleItemRequest body de POST /api/products/{id}/bundle-items.
type AddBundleItemRequest struct {
	ChildID  string `json:"child_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// BundleItemResponse componente de un bundle.
type BundleItemResponse struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	Quantity int    `json:"quantity"`
}
