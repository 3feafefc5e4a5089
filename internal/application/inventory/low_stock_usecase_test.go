package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

const (
	companyID   = "c1"
	warehouseID = "w1"
)

// seed crea empresa, bodega y devuelve el store listo.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, memory.NewCompanyRepository(store).Create(ctx, &entity.Company{ID: companyID, Name: "Ferretería"}))
	require.NoError(t, memory.NewWarehouseRepository(store).Create(ctx, &entity.Warehouse{ID: warehouseID, CompanyID: companyID, Name: "Principal"}))
	return store
}

func addProduct(t *testing.T, store *memory.Store, id string, quantity, threshold int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, &entity.Product{
		ID: id, CompanyID: companyID, SKU: "SKU-" + id, Name: "Producto " + id,
		Price: decimal.NewFromInt(1), LowStockThreshold: threshold,
	}))
	require.NoError(t, memory.NewInventoryRepository(store).Create(ctx, &entity.Inventory{
		ProductID: id, WarehouseID: warehouseID, Quantity: quantity,
	}))
}

func addSale(t *testing.T, store *memory.Store, productID string, quantity int, soldAt time.Time) {
	t.Helper()
	require.NoError(t, memory.NewSaleRepository(store).Create(context.Background(), &entity.Sale{
		ID: productID + soldAt.String(), ProductID: productID, WarehouseID: warehouseID,
		Quantity: quantity, SoldAt: soldAt,
	}))
}

func newLowStock(store *memory.Store, windows inventory.AlertWindows, opts ...inventory.LowStockOption) *inventory.LowStockUseCase {
	opts = append([]inventory.LowStockOption{inventory.WithClock(func() time.Time { return fixedNow })}, opts...)
	return inventory.NewLowStockUseCase(memory.NewCompanyRepository(store), memory.NewAlertRepository(store), windows, opts...)
}

var defaultWindows = inventory.AlertWindows{ActivityDays: 30, VelocityDays: 30}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_VentanasIndependientes(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 10, fixedNow.AddDate(0, 0, -10))

	// Con 7 días de actividad la venta de hace 10 días ya no cuenta.
	out, err := newLowStock(store, inventory.AlertWindows{ActivityDays: 7, VelocityDays: 30}).
		GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Zero(t, out.TotalAlerts)

	out, err = newLowStock(store, defaultWindows).GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	// 10 unidades en 30 días; 5 en stock → 15 días.
	assert.Equal(t, 15, out.Alerts[0].DaysUntilStockout)
}

func TestGetLowStockAlerts_LimiteDeVentanaInclusivo(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 1, fixedNow.AddDate(0, 0, -30))

	out, err := newLowStock(store, defaultWindows).GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalAlerts)
}

func TestGetLowStockAlerts_AislamientoDeEmpresa(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 1, fixedNow.AddDate(0, 0, -1))

	out, err := newLowStock(store, defaultWindows).GetLowStockAlerts(context.Background(), "otra")
	require.NoError(t, err)
	assert.NotNil(t, out.Alerts)
	assert.Zero(t, out.TotalAlerts)
}

func TestGetLowStockAlerts_ErrorDeBaseSePropaga(t *testing.T) {
	store := seed(t)
	store.FailOn(memory.OpAlertRead, errors.New("timeout"))

	_, err := newLowStock(store, defaultWindows).GetLowStockAlerts(context.Background(), companyID)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

// fakeCache caché en memoria con generaciones, que cuenta accesos y puede fallar.
type fakeCache struct {
	data        map[string]cachedEntry
	generations map[string]int64
	err         error
	gets, sets  int
	invalidated []string
	beforeSet   func()
}

type cachedEntry struct {
	generation int64
	resp       *dto.LowStockAlertsResponse
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]cachedEntry{}, generations: map[string]int64{}}
}

func (f *fakeCache) Generation(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.generations[id], nil
}

func (f *fakeCache) Get(_ context.Context, id string) (*dto.LowStockAlertsResponse, bool, error) {
	f.gets++
	if f.err != nil {
		return nil, false, f.err
	}
	e, ok := f.data[id]
	if !ok || e.generation != f.generations[id] {
		return nil, false, nil
	}
	return e.resp, true, nil
}

func (f *fakeCache) Set(_ context.Context, id string, generation int64, r *dto.LowStockAlertsResponse) error {
	if f.beforeSet != nil {
		f.beforeSet()
	}
	f.sets++
	if f.err != nil {
		return f.err
	}
	f.data[id] = cachedEntry{generation: generation, resp: r}
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id string) error {
	f.invalidated = append(f.invalidated, id)
	f.generations[id]++
	delete(f.data, id)
	return f.err
}

func TestGetLowStockAlerts_CacheHit(t *testing.T) {
	store := seed(t)
	fc := newFakeCache()
	fc.data[companyID] = cachedEntry{resp: &dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{{ProductID: "cacheado"}}, TotalAlerts: 1}}

	out, err := newLowStock(store, defaultWindows, inventory.WithCache(fc)).GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, "cacheado", out.Alerts[0].ProductID)
	assert.Zero(t, fc.sets)
}

func TestGetLowStockAlerts_CacheMissGuarda(t *testing.T) {
	store := seed(t)
	fc := newFakeCache()

	_, err := newLowStock(store, defaultWindows, inventory.WithCache(fc)).GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.sets)
	assert.Contains(t, fc.data, companyID)
}

func TestGetLowStockAlerts_InvalidacionDuranteCalculoNoDejaDatosViejos(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 1, fixedNow.AddDate(0, 0, -1))
	fc := newFakeCache()
	movements := inventory.NewStockMovementUseCase(memory.NewWarehouseRepository(store), memory.NewTxRunner(store), fc)
	uc := newLowStock(store, defaultWindows, inventory.WithCache(fc))

	// Un ajuste confirma entre el cálculo y el guardado en caché.
	fc.beforeSet = func() {
		fc.beforeSet = nil
		_, err := movements.AdjustStock(context.Background(), companyID, dto.StockAdjustmentRequest{
			ProductID: "p1", WarehouseID: warehouseID, Change: 50, Reason: "recepción",
		})
		require.NoError(t, err)
	}

	first, err := uc.GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalAlerts, "la respuesta en curso refleja el estado leído")

	second, err := uc.GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err)
	assert.Zero(t, second.TotalAlerts, "la entrada calculada antes del ajuste no debe servirse")
	assert.Equal(t, 2, fc.sets)
}

func TestGetLowStockAlerts_CacheCaidoSeIgnora(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 1, fixedNow.AddDate(0, 0, -1))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	redisCache := cache.NewRedisAlertCache(client, time.Minute)

	out, err := newLowStock(store, defaultWindows, inventory.WithCache(redisCache)).GetLowStockAlerts(context.Background(), companyID)
	require.NoError(t, err, "un caché caído no debe romper la lectura")
	assert.Equal(t, 1, out.TotalAlerts)
}

func TestStockMovement_InvalidaCache(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	fc := newFakeCache()
	fc.err = errors.New("redis caído")

	uc := inventory.NewStockMovementUseCase(memory.NewWarehouseRepository(store), memory.NewTxRunner(store), fc)
	out, err := uc.AdjustStock(context.Background(), companyID, dto.StockAdjustmentRequest{
		ProductID: "p1", WarehouseID: warehouseID, Change: 3,
	})
	require.NoError(t, err, "un fallo al invalidar solo se registra")
	assert.Equal(t, 8, out.Quantity)
	assert.Equal(t, []string{companyID}, fc.invalidated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hoja de reorden
// ──────────────────────────────────────────────────────────────────────────────

type fakeSheets struct {
	alerts []entity.LowStockAlert
}

func (f *fakeSheets) GenerateReorderSheet(_ context.Context, _ *entity.Company, alerts []entity.LowStockAlert, _ time.Time) ([]byte, error) {
	f.alerts = alerts
	return []byte("%PDF-fake"), nil
}

func TestReorderSheet(t *testing.T) {
	store := seed(t)
	addProduct(t, store, "p1", 5, 10)
	addSale(t, store, "p1", 1, fixedNow.AddDate(0, 0, -1))
	sheets := &fakeSheets{}

	uc := newLowStock(store, defaultWindows, inventory.WithReorderSheets(sheets))
	doc, err := uc.ReorderSheet(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	require.Len(t, sheets.alerts, 1)
	// 1 unidad en 30 días.
	assert.Equal(t, "0.0333", sheets.alerts[0].DailyVelocity.String())

	_, err = uc.ReorderSheet(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReorderSheet_SinGenerador(t *testing.T) {
	store := seed(t)
	_, err := newLowStock(store, defaultWindows).ReorderSheet(context.Background(), companyID)
	assert.Error(t, err)
}
