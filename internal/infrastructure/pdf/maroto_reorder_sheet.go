// Package pdf genera la hoja de reorden de stock bajo en A4 con Maroto v2.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  HOJA DE REORDEN + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Vta/día | Días | … │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de alertas + nota del centinela               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

var _ ports.ReorderSheetGenerator = (*MarotoReorderSheet)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReorderSheet implementa ports.ReorderSheetGenerator usando Maroto v2.
type MarotoReorderSheet struct{}

// NewMarotoReorderSheet construye el generador.
func NewMarotoReorderSheet() *MarotoReorderSheet { return &MarotoReorderSheet{} }

// GenerateReorderSheet genera el PDF y devuelve sus bytes. Con cero alertas produce una hoja con la leyenda "sin alertas".
func (g *MarotoReorderSheet) GenerateReorderSheet(
	_ context.Context,
	company *entity.Company,
	alerts []entity.LowStockAlert,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de reorden", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(alerts) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin alertas de stock bajo.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, a := range alerts {
		m.AddRows(alertRow(a))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(alerts)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de reorden: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("HOJA DE REORDEN", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generada: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 2, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock/Umbral", 1, align.Center),
		h("Venta/día", 1, align.Center),
		h("Días", 1, align.Center),
		h("Pedir", 1, align.Center),
		h("Proveedor", 2, align.Left),
	)
}

func alertRow(a entity.LowStockAlert) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	days := cell(DaysLabel(a.DaysUntilStockout), 1, align.Center)
	if a.DaysUntilStockout != inventory.NoStockoutEstimate && a.DaysUntilStockout <= 7 {
		days = col.New(1).Add(text.New(DaysLabel(a.DaysUntilStockout), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorAlert,
		}))
	}

	supplier := col.New(2).Add(text.New("Sin proveedor", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}))
	if a.Supplier != nil {
		supplier = col.New(2).Add(
			text.New(a.Supplier.Name, props.Text{Size: 8, Top: 1, Left: 1}),
			text.New(a.Supplier.ContactEmail, props.Text{Size: 6.5, Top: 5, Left: 1, Color: colorGray}),
		)
	}

	return row.New(10).Add(
		cell(a.SKU, 2, align.Left),
		cell(a.ProductName, 2, align.Left),
		cell(a.WarehouseName, 2, align.Left),
		cell(fmt.Sprintf("%d/%d", a.Quantity, a.Threshold), 1, align.Center),
		cell(VelocityLabel(a.DailyVelocity), 1, align.Center),
		days,
		cell(fmt.Sprintf("%d", SuggestedOrder(a.Quantity, a.Threshold)), 1, align.Center),
		supplier,
	)
}

func footerRow(total int) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de alertas: %d", total), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
		text.New(`"Sin ventas" indica que no hubo ventas en la ventana de velocidad: no hay proyección de quiebre.`,
			props.Text{Size: 6.5, Top: 7, Color: colorGray}),
	))
}

// DaysLabel texto de la columna de días; el centinela se muestra como "Sin ventas".
func DaysLabel(days int) string {
	if days == inventory.NoStockoutEstimate {
		return "Sin ventas"
	}
	return fmt.Sprintf("%d", days)
}

// VelocityLabel unidades vendidas por día con dos decimales.
func VelocityLabel(perDay decimal.Decimal) string {
	return perDay.StringFixed(2)
}

// SuggestedOrder cantidad a pedir para volver al doble del umbral (mínimo 1).
func SuggestedOrder(quantity, threshold int) int {
	n := 2*threshold - quantity
	if n < 1 {
		return 1
	}
	return n
}
