package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SupplierRepository proveedores y su vínculo con productos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
	// LinkProduct crea o actualiza el vínculo proveedor↔producto.
	LinkProduct(ctx context.Context, link *entity.SupplierProduct) error
	// ClearPrimary quita la marca de primario a todos los vínculos del producto.
	ClearPrimary(ctx context.Context, productID string) error
}
