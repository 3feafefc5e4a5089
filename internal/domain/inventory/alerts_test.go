package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Proyección de quiebre
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectStockout_VelocidadPositiva(t *testing.T) {
	// 300 unidades en 30 días = 10 por día; 100 en stock → 10 días.
	v := inventory.DailyVelocity(300, 30)
	assert.Equal(t, 10, inventory.ProjectStockout(100, v))
}

func TestProjectStockout_TruncaHaciaCero(t *testing.T) {
	// 7 unidades en 30 días; 5 en stock → 5*30/7 = 21.4 → 21.
	v := inventory.DailyVelocity(7, 30)
	assert.Equal(t, 21, inventory.ProjectStockout(5, v))
}

func TestProjectStockout_FraccionPeriodicaExacta(t *testing.T) {
	// 2 unidades en 3 días (0.666…/día); 2 en stock → exactamente 3 días, sin error de redondeo.
	v := inventory.DailyVelocity(2, 3)
	assert.Equal(t, 3, inventory.ProjectStockout(2, v))
}

func TestProjectStockout_VelocidadCeroDevuelveCentinela(t *testing.T) {
	v := inventory.DailyVelocity(0, 30)
	assert.True(t, v.IsZero())
	assert.Equal(t, inventory.NoStockoutEstimate, inventory.ProjectStockout(5, v))
	assert.Equal(t, 99, inventory.NoStockoutEstimate)
}

func TestProjectStockout_SinStock(t *testing.T) {
	v := inventory.DailyVelocity(30, 30)
	assert.Equal(t, 0, inventory.ProjectStockout(0, v))
}

func TestVelocity_PerDay(t *testing.T) {
	assert.True(t, decimal.NewFromInt(10).Equal(inventory.DailyVelocity(300, 30).PerDay()))
	assert.True(t, decimal.Zero.Equal(inventory.DailyVelocity(0, 30).PerDay()))
	assert.True(t, decimal.Zero.Equal(inventory.DailyVelocity(10, 0).PerDay()), "ventana inválida = velocidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de actividad
// ──────────────────────────────────────────────────────────────────────────────

func TestSoldSince(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	since := inventory.ActivityWindowStart(now, 30)

	assert.True(t, inventory.SoldSince(now.AddDate(0, 0, -10), since))
	assert.True(t, inventory.SoldSince(now.AddDate(0, 0, -30), since), "el límite inferior es inclusivo")
	assert.False(t, inventory.SoldSince(now.AddDate(0, 0, -45), since))
}

func TestInWindow(t *testing.T) {
	to := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)

	assert.True(t, inventory.InWindow(from, from, to))
	assert.True(t, inventory.InWindow(to, from, to))
	assert.False(t, inventory.InWindow(to.Add(time.Second), from, to))
	assert.False(t, inventory.InWindow(from.Add(-time.Second), from, to))
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedor primario
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectPrimarySupplier_MarcaPrimario(t *testing.T) {
	contacts := []entity.SupplierContact{
		{SupplierID: "a", Name: "Alfa"},
		{SupplierID: "c", Name: "Gamma", IsPrimary: true},
		{SupplierID: "b", Name: "Beta"},
	}
	got := inventory.SelectPrimarySupplier(contacts)
	require.NotNil(t, got)
	assert.Equal(t, "c", got.SupplierID)
}

func TestSelectPrimarySupplier_MenorIDSinPrimario(t *testing.T) {
	contacts := []entity.SupplierContact{
		{SupplierID: "b"},
		{SupplierID: "a"},
	}
	got := inventory.SelectPrimarySupplier(contacts)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.SupplierID)
	assert.Equal(t, "b", contacts[0].SupplierID, "no debe mutar la entrada")
}

func TestSelectPrimarySupplier_SinProveedores(t *testing.T) {
	assert.Nil(t, inventory.SelectPrimarySupplier(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ensamblado
// ──────────────────────────────────────────────────────────────────────────────

func candidate(productID, warehouseID string, qty, threshold int) entity.LowStockCandidate {
	return entity.LowStockCandidate{
		ProductID: productID, ProductName: "P-" + productID, SKU: "SKU-" + productID,
		WarehouseID: warehouseID, WarehouseName: "W-" + warehouseID,
		Quantity: qty, Threshold: threshold,
	}
}

func TestAssembleAlerts_FiltraOrdenaYEnriquece(t *testing.T) {
	p1w2 := entity.StockPair{ProductID: "p1", WarehouseID: "w2"}
	p1w1 := entity.StockPair{ProductID: "p1", WarehouseID: "w1"}
	p2w1 := entity.StockPair{ProductID: "p2", WarehouseID: "w1"}
	p3w1 := entity.StockPair{ProductID: "p3", WarehouseID: "w1"}
	_ = p3w1

	alerts := inventory.AssembleAlerts(inventory.AlertInputs{
		Candidates: []entity.LowStockCandidate{
			candidate("p2", "w1", 5, 20),
			candidate("p1", "w2", 100, 200),
			candidate("p3", "w1", 1, 5),
			candidate("p1", "w1", 5, 20),
		},
		RecentlySold: map[entity.StockPair]bool{p1w2: true, p1w1: true, p2w1: true},
		UnitsSold:    map[entity.StockPair]int64{p1w2: 300, p2w1: 0},
		SuppliersByProduct: map[string][]entity.SupplierContact{
			"p1": {{ProductID: "p1", SupplierID: "s1", Name: "Proveedor", ContactEmail: "ventas@proveedor.co"}},
		},
		VelocityWindowDays: 30,
	})

	require.Len(t, alerts, 3, "p3 sin ventas recientes se descarta")
	assert.Equal(t, p1w1, alerts[0].Pair())
	assert.Equal(t, p1w2, alerts[1].Pair())
	assert.Equal(t, p2w1, alerts[2].Pair())

	assert.Equal(t, inventory.NoStockoutEstimate, alerts[0].DaysUntilStockout, "sin unidades en la ventana")
	assert.Equal(t, 10, alerts[1].DaysUntilStockout)
	assert.True(t, decimal.NewFromInt(10).Equal(alerts[1].DailyVelocity))
	require.NotNil(t, alerts[1].Supplier)
	assert.Equal(t, "s1", alerts[1].Supplier.SupplierID)
	assert.Nil(t, alerts[2].Supplier, "producto sin proveedores se incluye con supplier nil")
}

func TestAssembleAlerts_VacioNoEsNil(t *testing.T) {
	alerts := inventory.AssembleAlerts(inventory.AlertInputs{VelocityWindowDays: 30})
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bundles
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateBundleItem(t *testing.T) {
	parent := &entity.Product{ID: "kit", CompanyID: "c1"}
	child := &entity.Product{ID: "tornillo", CompanyID: "c1"}

	assert.NoError(t, inventory.ValidateBundleItem(parent, child, 4, false))
	assert.ErrorIs(t, inventory.ValidateBundleItem(parent, child, 0, false), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateBundleItem(parent, parent, 1, false), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateBundleItem(parent, child, 1, true), domain.ErrInvalidInput)

	nested := &entity.Product{ID: "otro-kit", CompanyID: "c1", IsBundle: true}
	assert.ErrorIs(t, inventory.ValidateBundleItem(parent, nested, 1, false), domain.ErrInvalidInput)

	foreign := &entity.Product{ID: "ajeno", CompanyID: "c2"}
	assert.ErrorIs(t, inventory.ValidateBundleItem(parent, foreign, 1, false), domain.ErrNotFound)
}
