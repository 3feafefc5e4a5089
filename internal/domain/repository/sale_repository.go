package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SaleRepository historial de ventas por producto+bodega.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
}
