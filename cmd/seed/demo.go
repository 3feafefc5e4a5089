package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
)

// demoProduct producto de demostración con sus ventas (días atrás → unidades).
type demoProduct struct {
	SKU       string
	Name      string
	Price     string
	Quantity  int
	Threshold int
	Sales     map[int]int
}

var demoCatalog = []demoProduct{
	{SKU: "TOR-0001", Name: "Tornillo drywall 6x1", Price: "0.15", Quantity: 300, Threshold: 100, Sales: map[int]int{3: 120, 12: 150}},
	{SKU: "BRO-0010", Name: "Broca concreto 3/8", Price: "4.90", Quantity: 25, Threshold: 10, Sales: map[int]int{5: 8, 20: 6}},
	{SKU: "PIN-0200", Name: "Pintura vinilo blanco galón", Price: "32.50", Quantity: 12, Threshold: 8, Sales: map[int]int{45: 6}},
	{SKU: "CIN-0003", Name: "Cinta aislante negra", Price: "1.20", Quantity: 60, Threshold: 20, Sales: map[int]int{1: 50}},
}

func runDemo(c *cli.Context) error {
	ctx := c.Context
	cfg := configFrom(c)
	pool := poolFrom(c)

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		return err
	}

	alertCache, err := cache.NewAlertCache(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, sin invalidación de alertas")
		alertCache = cache.NoopAlertCache{}
	}
	if rc, ok := alertCache.(*cache.RedisAlertCache); ok {
		defer rc.Close()
		if err := rc.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("no se pudo limpiar el caché de alertas")
		}
	}

	companies := postgres.NewCompanyRepository(pool)
	warehouses := postgres.NewWarehouseRepository(pool)
	tx := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companies)
	warehouseUC := usecase.NewWarehouseUseCase(warehouses)
	productUC := usecase.NewProductUseCase(
		postgres.NewProductRepository(pool), warehouses, postgres.NewInventoryRepository(pool),
		postgres.NewBundleRepository(pool), tx, alertCache, cfg.Alerts.DefaultThreshold,
	)
	supplierUC := usecase.NewSupplierUseCase(postgres.NewSupplierRepository(pool), tx, alertCache)
	movementUC := inventory.NewStockMovementUseCase(warehouses, tx, alertCache)

	company, err := companyUC.Create(ctx, dto.CreateCompanyRequest{Name: "Ferretería Demo"})
	if err != nil {
		return fmt.Errorf("crear empresa: %w", err)
	}
	warehouse, err := warehouseUC.Create(ctx, company.ID, dto.CreateWarehouseRequest{Name: "Bodega Principal", Address: "Calle 10 # 5-20"})
	if err != nil {
		return fmt.Errorf("crear bodega: %w", err)
	}
	north, err := warehouseUC.Create(ctx, company.ID, dto.CreateWarehouseRequest{Name: "Bodega Norte", Address: "Autopista Norte km 3"})
	if err != nil {
		return fmt.Errorf("crear bodega: %w", err)
	}
	supplier, err := supplierUC.Create(ctx, company.ID, dto.CreateSupplierRequest{Name: "Distribuidora Andina", ContactEmail: "pedidos@andina.example"})
	if err != nil {
		return fmt.Errorf("crear proveedor: %w", err)
	}

	now := time.Now().UTC()
	for i, p := range demoCatalog {
		name, sku, wh, qty, threshold := p.Name, p.SKU, warehouse.ID, p.Quantity, p.Threshold
		created, err := productUC.Create(ctx, company.ID, dto.CreateProductRequest{
			Name: &name, SKU: &sku, Price: json.RawMessage(`"` + p.Price + `"`),
			WarehouseID: &wh, InitialQuantity: &qty, LowStockThreshold: &threshold,
		})
		if err != nil {
			return fmt.Errorf("crear %s: %w", p.SKU, err)
		}
		if i == 0 {
			// Recepción en la segunda bodega y una venta reciente allí.
			if _, err := movementUC.AdjustStock(ctx, company.ID, dto.StockAdjustmentRequest{
				ProductID: created.ProductID, WarehouseID: north.ID, Change: 40, Reason: "purchase_receipt",
			}); err != nil {
				return fmt.Errorf("recepción %s: %w", p.SKU, err)
			}
			soldAt := now.AddDate(0, 0, -2)
			if _, err := movementUC.RegisterSale(ctx, company.ID, dto.RegisterSaleRequest{
				ProductID: created.ProductID, WarehouseID: north.ID, Quantity: 30, SoldAt: &soldAt,
			}); err != nil {
				return fmt.Errorf("venta %s: %w", p.SKU, err)
			}
		}
		// El último producto queda sin proveedor.
		if i < len(demoCatalog)-1 {
			if err := supplierUC.LinkProduct(ctx, company.ID, supplier.ID, dto.LinkSupplierProductRequest{
				ProductID: created.ProductID, IsPrimary: true,
			}); err != nil {
				return fmt.Errorf("vincular %s: %w", p.SKU, err)
			}
		}
		for daysAgo, units := range p.Sales {
			soldAt := now.AddDate(0, 0, -daysAgo)
			if _, err := movementUC.RegisterSale(ctx, company.ID, dto.RegisterSaleRequest{
				ProductID: created.ProductID, WarehouseID: warehouse.ID, Quantity: units, SoldAt: &soldAt,
			}); err != nil {
				return fmt.Errorf("venta %s: %w", p.SKU, err)
			}
		}
	}

	token, err := jwt.Generate(cfg.JWT.Secret, "00000000-0000-0000-0000-000000000001", company.ID, "admin", cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	log.Info().Str("company_id", company.ID).Str("warehouse_id", warehouse.ID).Str("north_warehouse_id", north.ID).Msg("datos de demostración creados")
	fmt.Printf("company_id=%s\nwarehouse_id=%s\ntoken=%s\n", company.ID, warehouse.ID, token)
	return nil
}
