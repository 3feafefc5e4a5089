package entity

import "time"

// Supplier proveedor de una empresa.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactEmail string
	CreatedAt    time.Time
}

// SupplierProduct relación muchos-a-muchos proveedor↔producto.
// IsPrimary marca el proveedor usado para reorden; a lo sumo uno por producto.
type SupplierProduct struct {
	SupplierID string
	ProductID  string
	IsPrimary  bool
}
