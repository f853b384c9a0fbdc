// Package pdf genera el reporte PDF del dashboard de pronóstico.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + selección  │  ID de reporte + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRÁFICO: banda P10–P90 / mediana / real (PNG)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Métrica | Valor                                      │
//	│  ALERTAS: Overstock | Understock                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: filas de la vista + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain"
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 119, Blue: 180}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	Author string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{Author: author}
}

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReport(_ context.Context, data analytics.ReportData) ([]byte, error) {
	if data.View == nil {
		return nil, fmt.Errorf("pdf: vista nula: %w", domain.ErrInvalidInput)
	}
	v := data.View

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Forecast Dashboard "+v.Selection.StoreID+" / "+v.Selection.ItemID, true).
		WithAuthor(nonEmpty(g.Author, "forecast-dashboard"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(data.ChartPNG) > 0 {
		m.AddRows(image.NewFromBytesRow(80, data.ChartPNG, extension.Png, props.Rect{
			Percent: 100,
			Center:  true,
		}))
	} else {
		m.AddRows(row.New(20).Add(col.New(12).Add(
			text.New("No data for selection", props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 7,
			}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Metric", "Value"))
	for _, metric := range []dto.MetricDTO{v.Metrics.RMSE, v.Metrics.MAE, v.Metrics.WAPE} {
		m.AddRows(valueRow(metric.Label, metric.Display, false))
	}
	m.AddRows(row.New(3))
	m.AddRows(tableHeaderRow("Alert", "Count"))
	for _, c := range []dto.CountDTO{v.Alerts.Overstock, v.Alerts.Understock} {
		m.AddRows(valueRow(c.Label, strconv.Itoa(c.Count), c.Count > 0))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(v.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + selección (izq) e ID + fecha (der).
func headerRow(data analytics.ReportData) core.Row {
	sel := data.View.Selection
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Forecast Dashboard", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Store: %s   |   Item: %s", sel.StoreID, sel.ItemID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Report ID: "+data.ID, props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New("Generated: "+data.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(left, right string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(left, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New(right, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// valueRow: fila etiqueta/valor; resalta las alertas distintas de cero.
func valueRow(label, value string, highlight bool) core.Row {
	vp := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}
	if highlight {
		vp.Style = fontstyle.Bold
		vp.Color = colorAlert
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1, Left: 1})),
		col.New(4).Add(text.New(value, vp)),
	)
}

func footerRow(rows int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Rows in view: %d. Shaded band: P10 to P90 interval (80%%). "+
				"WAPE shown as a percentage.", rows),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
