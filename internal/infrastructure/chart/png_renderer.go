package chart

import (
	"bytes"
	"context"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain"
)

var _ analytics.ChartRenderer = (*PNGRenderer)(nil)

var (
	pngMedian = drawing.ColorFromHex("1f77b4")
	pngBand   = drawing.Color{R: 31, G: 119, B: 180, A: 77} // ~0.3 de opacidad
	pngActual = drawing.ColorBlack
	pngWhite  = drawing.ColorWhite
)

// bandLowerSeries serie auxiliar que tapa en blanco la banda bajo P10; no va en la leyenda.
const bandLowerSeries = "P10"

// legendSeries series visibles en la leyenda.
func legendSeries(series []gochart.Series) []gochart.Series {
	out := make([]gochart.Series, 0, len(series))
	for _, s := range series {
		if s.GetName() == bandLowerSeries {
			continue
		}
		out = append(out, s)
	}
	return out
}

// PNGRenderer genera el gráfico rasterizado con go-chart.
type PNGRenderer struct {
	Width, Height int
}

// NewPNGRenderer tamaño por defecto 1000×400.
func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{Width: 1000, Height: 400} }

// ContentType tipo MIME del documento.
func (r *PNGRenderer) ContentType() string { return "image/png" }

// RenderChart dibuja la vista. go-chart no admite series vacías: una vista sin
// filas devuelve domain.ErrEmptySelection.
//
// go-chart rellena desde la serie hasta el borde inferior, así que la banda se
// pinta como P90 con relleno y P10 encima con relleno blanco.
func (r *PNGRenderer) RenderChart(_ context.Context, c dto.ChartDTO, title string) ([]byte, error) {
	n := len(c.Points)
	if n == 0 {
		return nil, domain.ErrEmptySelection
	}

	xs := make([]float64, n)
	p10 := make([]float64, n)
	p50 := make([]float64, n)
	p90 := make([]float64, n)
	act := make([]float64, n)
	for i, p := range c.Points {
		xs[i] = float64(p.Index)
		p10[i], p50[i], p90[i], act[i] = p.Pred10, p.Pred50, p.Pred90, p.Actual
	}
	// go-chart necesita al menos dos valores en x: un punto se dibuja como segmento corto
	if n == 1 {
		xs = []float64{xs[0] - 0.25, xs[0] + 0.25}
		p10 = append(p10, p10[0])
		p50 = append(p50, p50[0])
		p90 = append(p90, p90[0])
		act = append(act, act[0])
	}
	yLo, yHi := valueRange(c.Points)
	xLo, xHi := xRange(n)

	graph := gochart.Chart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Period",
			Range: &gochart.ContinuousRange{Min: xLo, Max: xHi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name:  "Units",
			Range: &gochart.ContinuousRange{Min: yLo, Max: yHi},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    SeriesBand,
				XValues: xs,
				YValues: p90,
				Style:   gochart.Style{StrokeColor: pngBand, StrokeWidth: 1, FillColor: pngBand},
			},
			gochart.ContinuousSeries{
				Name:    bandLowerSeries,
				XValues: xs,
				YValues: p10,
				Style:   gochart.Style{StrokeColor: pngBand, StrokeWidth: 1, FillColor: pngWhite},
			},
			gochart.ContinuousSeries{
				Name:    SeriesMedian,
				XValues: xs,
				YValues: p50,
				Style:   gochart.Style{StrokeColor: pngMedian, StrokeWidth: 2},
			},
			gochart.ContinuousSeries{
				Name:    SeriesActual,
				XValues: xs,
				YValues: act,
				Style:   gochart.Style{StrokeColor: pngActual, StrokeWidth: 1.5, StrokeDashArray: []float64{6, 4}},
			},
		},
	}
	// La leyenda se arma sobre una copia sin la serie auxiliar del borde inferior.
	legendSrc := graph
	legendSrc.Series = legendSeries(graph.Series)
	graph.Elements = []gochart.Renderable{gochart.Legend(&legendSrc)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render png: %w", err)
	}
	return buf.Bytes(), nil
}
