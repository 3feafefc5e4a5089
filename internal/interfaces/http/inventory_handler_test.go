package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
)

func TestRegisterSale_DescuentaYRegistra(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 10, 2)

	status, raw := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 4,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.EqualValues(t, 6, out["quantity"])

	inv, _ := env.store.Inventory(productID, env.warehouseID)
	assert.Equal(t, 6, inv.Quantity)
	require.Len(t, env.store.Sales(), 1)
	logs := env.store.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, -4, logs[1].ChangeAmount)
	assert.Equal(t, "sale", logs[1].Reason)
}

func TestRegisterSale_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 3, 2)

	status, raw := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 4,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.MsgInsufficientStock, decodeError(t, raw))

	inv, _ := env.store.Inventory(productID, env.warehouseID)
	assert.Equal(t, 3, inv.Quantity)
	assert.Empty(t, env.store.Sales())
}

func TestRegisterSale_FechaFutura(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 3, 2)

	status, raw := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 1,
		"sold_at": time.Now().Add(48 * time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "sold_at cannot be in the future", decodeError(t, raw))
}

func TestRegisterSale_CantidadCero(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 3, 2)

	status, raw := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "quantity must be greater than 0", decodeError(t, raw))
}

func TestRegisterSale_CantidadFueraDeRango(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 3, 2)

	status, _ := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 2147483648,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, env.store.Sales())
}

func TestRegisterSale_ProductoInexistente(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": "no-existe", "warehouse_id": env.warehouseID, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRegisterSale_FalloDeVentaRevierteStock(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "S-1", 10, 2)
	env.store.FailOn(memory.OpSaleCreate, errors.New("boom"))

	status, _ := env.do(t, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "quantity": 1,
	})
	assert.Equal(t, http.StatusInternalServerError, status)

	inv, _ := env.store.Inventory(productID, env.warehouseID)
	assert.Equal(t, 10, inv.Quantity)
	assert.Len(t, env.store.Logs(), 1, "solo el log de stock inicial")
}

func TestRegisterSale_RolNoPermitido(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.doAs(t, tokenForRole(t, "auditor"), http.MethodPost, "/api/sales", map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdjustStock(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "A-1", 5, 2)

	status, raw := env.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "change": 20, "reason": "purchase_receipt",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	inv, _ := env.store.Inventory(productID, env.warehouseID)
	assert.Equal(t, 25, inv.Quantity)
	logs := env.store.Logs()
	assert.Equal(t, "purchase_receipt", logs[len(logs)-1].Reason)

	status, _ = env.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "change": -26,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.doAs(t, tokenForRole(t, "vendedor"), http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "change": -1,
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdjustStock_ResultadoFueraDeRango(t *testing.T) {
	env := newTestEnv(t)
	productID := env.createProduct(t, "A-1", 2147483600, 2)
	logsBefore := len(env.store.Logs())

	status, raw := env.do(t, http.MethodPost, "/api/inventory/adjustments", map[string]any{
		"product_id": productID, "warehouse_id": env.warehouseID, "change": 100,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Resulting quantity exceeds the maximum allowed", decodeError(t, raw))

	inv, _ := env.store.Inventory(productID, env.warehouseID)
	assert.Equal(t, 2147483600, inv.Quantity)
	assert.Len(t, env.store.Logs(), logsBefore)
}
