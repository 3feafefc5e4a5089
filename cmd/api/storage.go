package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

// storage repositorios y runner de transacciones del backend elegido en APP_STORAGE.
type storage struct {
	companies  repository.CompanyRepository
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
	inventory  repository.InventoryRepository
	bundles    repository.BundleRepository
	suppliers  repository.SupplierRepository
	alerts     repository.AlertRepository
	tx         ports.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.App.Storage {
	case "memory":
		s := memory.NewStore()
		return &storage{
			companies:  memory.NewCompanyRepository(s),
			warehouses: memory.NewWarehouseRepository(s),
			products:   memory.NewProductRepository(s),
			inventory:  memory.NewInventoryRepository(s),
			bundles:    memory.NewBundleRepository(s),
			suppliers:  memory.NewSupplierRepository(s),
			alerts:     memory.NewAlertRepository(s),
			tx:         memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			companies:  postgres.NewCompanyRepository(pool),
			warehouses: postgres.NewWarehouseRepository(pool),
			products:   postgres.NewProductRepository(pool),
			inventory:  postgres.NewInventoryRepository(pool),
			bundles:    postgres.NewBundleRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			alerts:     postgres.NewAlertRepository(pool),
			tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("APP_STORAGE desconocido: %q", cfg.App.Storage)
	}
}
