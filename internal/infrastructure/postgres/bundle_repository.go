package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo composición de bundles sobre bundle_items.
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el repositorio (pool o tx).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// Upsert agrega el componente o actualiza su cantidad.
func (r *BundleRepo) Upsert(ctx context.Context, item *entity.BundleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bundle_items (parent_id, child_id, quantity_required)
		VALUES ($1, $2, $3)
		ON CONFLICT (parent_id, child_id) DO UPDATE SET quantity_required = EXCLUDED.quantity_required`,
		item.ParentID, item.ChildID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert bundle item: %w", err)
	}
	return nil
}

// ListByParent componentes de un bundle.
func (r *BundleRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.BundleItem, error) {
	if !validID(parentID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT parent_id, child_id, quantity_required
		FROM bundle_items WHERE parent_id = $1 ORDER BY child_id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list bundle items: %w", err)
	}
	defer rows.Close()

	var list []*entity.BundleItem
	for rows.Next() {
		var it entity.BundleItem
		if err := rows.Scan(&it.ParentID, &it.ChildID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan bundle item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// IsChild indica si el producto es componente de algún bundle.
func (r *BundleRepo) IsChild(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bundle_items WHERE child_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("bundle child lookup: %w", err)
	}
	return exists, nil
}
