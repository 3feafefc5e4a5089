package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryRepository define el puerto para el stock por producto+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Devuelve (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error)
}

// InventoryLogRepository auditoría de cambios de cantidad.
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryLog) error
}
