// Package pdf implementa la generación del reporte de stock del banco de
// sangre (una página A4: tabla de saldos por grupo y total de unidades).
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

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el reporte de stock usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	appName string,
	balances []entity.Stock,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock de Sangre", true).
		WithAuthor(appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, s := range balances {
		m.AddRows(balanceRow(s))
		total = total.Add(s.Quantity)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK DE SANGRE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de saldos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Grupo sanguíneo", 6, align.Left),
		h("Unidades disponibles", 6, align.Right),
	)
}

// balanceRow: una fila por grupo sanguíneo.
func balanceRow(s entity.Stock) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(
			s.BloodGroup.String(),
			props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(6).Add(text.New(
			s.Quantity.StringFixed(0),
			props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total de unidades en stock.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(9).Add(
		col.New(6).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Left,
			Color: colorPrimary, Top: 1, Left: 1,
		})),
		col.New(6).Add(text.New(total.StringFixed(0), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}
