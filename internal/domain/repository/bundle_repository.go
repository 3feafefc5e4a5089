package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// BundleRepository composición de productos (bundle_items).
type BundleRepository interface {
	Upsert(ctx context.Context, item *entity.BundleItem) error
	ListByParent(ctx context.Context, parentID string) ([]*entity.BundleItem, error)
	// IsChild indica si el producto aparece como componente de algún bundle.
	IsChild(ctx context.Context, productID string) (bool, error)
}
