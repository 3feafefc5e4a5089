package ports

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products  repository.ProductRepository
	Inventory repository.InventoryRepository
	Logs      repository.InventoryLogRepository
	Sales     repository.SaleRepository
	Bundles   repository.BundleRepository
	Suppliers repository.SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en cualquier
// otro caso (incluido un fallo del propio Commit). Ningún efecto parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
