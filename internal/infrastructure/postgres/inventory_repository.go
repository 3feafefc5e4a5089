package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository    = (*InventoryRepo)(nil)
	_ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)
)

// InventoryRepo stock por producto+bodega. Pensado para usarse dentro de una tx.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el repositorio (pool o tx).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila de inventario. Una cantidad negativa viola el CHECK y se reporta como entrada inválida.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at) VALUES ($1, $2, $3, $4)`,
		inv.ProductID, inv.WarehouseID, inv.Quantity, inv.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert inventory: %w", domain.ErrInvalidInput)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("insert inventory: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetForUpdate obtiene y bloquea la fila (SELECT FOR UPDATE). Debe llamarse dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	if !validID(productID) || !validID(warehouseID) {
		return nil, nil
	}
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID,
	).Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad del par.
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		inv.ProductID, inv.WarehouseID, inv.Quantity, inv.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("upsert inventory: %w", domain.ErrInsufficientStock)
		}
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListByProduct stock del producto en cada bodega.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error) {
	if !validID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// InventoryLogRepo auditoría de cambios de cantidad.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el repositorio (pool o tx).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create registra un cambio de cantidad.
func (r *InventoryLogRepo) Create(ctx context.Context, l *entity.InventoryLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_logs (id, product_id, warehouse_id, change_amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.ProductID, l.WarehouseID, l.ChangeAmount, l.Reason, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}
