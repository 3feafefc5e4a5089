// Package inventory contiene la lógica de dominio de las alertas de stock bajo:
// ventana de actividad, velocidad de venta, proyección de quiebre y proveedor primario.
// Todo es puro: sin acceso a datos ni reloj global.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoStockoutEstimate valor centinela de days_until_stockout cuando la velocidad de venta es cero.
// No es una estimación real de 99 días: significa "no hay proyección calculable".
const NoStockoutEstimate = 99

// Velocity promedio diario de ventas expresado como fracción exacta UnitsSold/WindowDays.
type Velocity struct {
	UnitsSold  int64
	WindowDays int
}

// DailyVelocity construye la velocidad de un par producto/bodega a partir de las unidades
// vendidas en la ventana de medición. Sin ventas (o ventana inválida) la velocidad es exactamente 0.
func DailyVelocity(unitsSold int64, windowDays int) Velocity {
	if unitsSold <= 0 || windowDays <= 0 {
		return Velocity{}
	}
	return Velocity{UnitsSold: unitsSold, WindowDays: windowDays}
}

// IsZero indica si no hubo ventas en la ventana.
func (v Velocity) IsZero() bool {
	return v.UnitsSold <= 0 || v.WindowDays <= 0
}

// PerDay devuelve unidades por día como decimal (redondeado a 4 decimales, solo para presentación).
func (v Velocity) PerDay() decimal.Decimal {
	if v.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(v.UnitsSold).Div(decimal.NewFromInt(int64(v.WindowDays))).Round(4)
}

// ProjectStockout estima los días hasta agotar stock: floor(quantity / velocity).
// Con velocidad cero devuelve NoStockoutEstimate.
// Se calcula como quantity*WindowDays/UnitsSold en enteros para evitar errores de redondeo.
func ProjectStockout(quantity int, v Velocity) int {
	if v.IsZero() {
		return NoStockoutEstimate
	}
	if quantity <= 0 {
		return 0
	}
	return int(int64(quantity) * int64(v.WindowDays) / v.UnitsSold)
}

// ActivityWindowStart límite inferior (inclusivo) de la ventana de actividad: now - days.
func ActivityWindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// SoldSince indica si una venta cuenta como actividad: sold_at >= since.
func SoldSince(soldAt, since time.Time) bool {
	return !soldAt.Before(since)
}

// InWindow indica si soldAt cae en [from, to]. Ambos límites son inclusivos.
func InWindow(soldAt, from, to time.Time) bool {
	return SoldSince(soldAt, from) && !soldAt.After(to)
}
