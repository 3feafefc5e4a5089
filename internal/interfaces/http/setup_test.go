package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
)

// testEnv API completa sobre el store en memoria, con testCompanyID y una bodega creadas.
type testEnv struct {
	app         *fiber.App
	store       *memory.Store
	warehouseID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	companies := memory.NewCompanyRepository(store)
	warehouses := memory.NewWarehouseRepository(store)
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: testCompanyID, Name: "Ferretería Central"}))
	warehouseID := uuid.New().String()
	require.NoError(t, warehouses.Create(ctx, &entity.Warehouse{ID: warehouseID, CompanyID: testCompanyID, Name: "Principal"}))

	tx := memory.NewTxRunner(store)
	deps := apphttp.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(companies),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouses),
		ProductUC: usecase.NewProductUseCase(
			memory.NewProductRepository(store), warehouses, memory.NewInventoryRepository(store),
			memory.NewBundleRepository(store), tx, nil, 10,
		),
		SupplierUC:    usecase.NewSupplierUseCase(memory.NewSupplierRepository(store), tx, nil),
		StockMovement: inventory.NewStockMovementUseCase(warehouses, tx, nil),
		LowStock: inventory.NewLowStockUseCase(
			companies, memory.NewAlertRepository(store),
			inventory.AlertWindows{ActivityDays: 30, VelocityDays: 30},
			inventory.WithReorderSheets(pdf.NewMarotoReorderSheet()),
		),
		JWTSecret: testJWTSecret,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, deps)
	return &testEnv{app: app, store: store, warehouseID: warehouseID}
}

// do lanza la petición autenticada como admin; body puede ser nil, string o un valor serializable.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	return e.doAs(t, tokenForRole(t, "admin"), method, path, body)
}

func (e *testEnv) doAs(t *testing.T, auth, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// createProduct crea un producto vía API y devuelve su ID.
func (e *testEnv) createProduct(t *testing.T, sku string, quantity, threshold int) string {
	t.Helper()
	status, raw := e.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":                "Producto " + sku,
		"sku":                 sku,
		"price":               "10.00",
		"warehouse_id":        e.warehouseID,
		"initial_quantity":    quantity,
		"low_stock_threshold": threshold,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out struct {
		ProductID string `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.ProductID
}

// sell registra una venta con sold_at en el pasado.
func (e *testEnv) sell(t *testing.T, productID string, quantity int, daysAgo int) {
	t.Helper()
	status, raw := e.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id":   productID,
		"warehouse_id": e.warehouseID,
		"quantity":     quantity,
		"sold_at":      time.Now().UTC().AddDate(0, 0, -daysAgo),
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
}

func decodeError(t *testing.T, raw []byte) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	return out["error"]
}
