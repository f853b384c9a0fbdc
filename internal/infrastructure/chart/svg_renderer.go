package chart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
)

var _ analytics.ChartRenderer = (*SVGRenderer)(nil)

// ── Paleta ───────────────────────────────────────────────────────────────────

const (
	colorMedian = "#1f77b4"
	colorBand   = "#1f77b4"
	colorActual = "#000000"
	colorAxis   = "#666666"
	colorGrid   = "#e5e5e5"
)

// SVGRenderer genera el gráfico como documento SVG (vectorial, embebible en HTML).
type SVGRenderer struct {
	Width, Height int
}

// NewSVGRenderer tamaño por defecto 960×360.
func NewSVGRenderer() *SVGRenderer { return &SVGRenderer{Width: 960, Height: 360} }

// ContentType tipo MIME del documento.
func (r *SVGRenderer) ContentType() string { return "image/svg+xml" }

type frame struct {
	left, right, top, bottom float64
	xLo, xHi, yLo, yHi       float64
}

func (f frame) x(v float64) float64 { return f.left + (v-f.xLo)/(f.xHi-f.xLo)*(f.right-f.left) }
func (f frame) y(v float64) float64 { return f.bottom - (v-f.yLo)/(f.yHi-f.yLo)*(f.bottom-f.top) }

// RenderChart dibuja la vista. Una vista vacía produce el marco con el texto
// "No data for selection"; nunca es error.
func (r *SVGRenderer) RenderChart(_ context.Context, c dto.ChartDTO, title string) ([]byte, error) {
	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", r.Width, r.Height))
	svg.CreateAttr("width", strconv.Itoa(r.Width))
	svg.CreateAttr("height", strconv.Itoa(r.Height))
	svg.CreateAttr("font-family", "sans-serif")
	svg.CreateAttr("font-size", "11")
	svg.CreateAttr("role", "img")
	if title != "" {
		svg.CreateElement("title").SetText(title)
	}

	yLo, yHi := valueRange(c.Points)
	xLo, xHi := xRange(len(c.Points))
	f := frame{
		left: 56, right: float64(r.Width) - 16,
		top: 28, bottom: float64(r.Height) - 36,
		xLo: xLo, xHi: xHi, yLo: yLo, yHi: yHi,
	}

	r.drawAxes(svg, f, c.Points)

	if len(c.Points) == 0 {
		msg := svg.CreateElement("text")
		msg.CreateAttr("x", fnum((f.left+f.right)/2))
		msg.CreateAttr("y", fnum((f.top+f.bottom)/2))
		msg.CreateAttr("text-anchor", "middle")
		msg.CreateAttr("fill", colorAxis)
		msg.SetText("No data for selection")
	} else {
		r.drawSeries(svg, f, c.Points)
	}
	r.drawLegend(svg, f)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("chart: escribir svg: %w", err)
	}
	return out, nil
}

func (r *SVGRenderer) drawAxes(svg *etree.Element, f frame, points []dto.ChartPointDTO) {
	g := svg.CreateElement("g")
	g.CreateAttr("class", "axes")

	// Eje y: 5 divisiones con rejilla
	const yTicks = 5
	for i := 0; i <= yTicks; i++ {
		v := f.yLo + (f.yHi-f.yLo)*float64(i)/yTicks
		y := f.y(v)
		grid := g.CreateElement("line")
		setLine(grid, f.left, y, f.right, y)
		grid.CreateAttr("stroke", colorGrid)

		label := g.CreateElement("text")
		label.CreateAttr("x", fnum(f.left-6))
		label.CreateAttr("y", fnum(y+4))
		label.CreateAttr("text-anchor", "end")
		label.CreateAttr("fill", colorAxis)
		label.SetText(strconv.FormatFloat(v, 'f', 1, 64))
	}

	// Eje x: como máximo 10 etiquetas (fecha si existe, si no la posición)
	step := 1
	if len(points) > 10 {
		step = (len(points) + 9) / 10
	}
	for i := 0; i < len(points); i += step {
		label := g.CreateElement("text")
		label.CreateAttr("x", fnum(f.x(float64(i))))
		label.CreateAttr("y", fnum(f.bottom+16))
		label.CreateAttr("text-anchor", "middle")
		label.CreateAttr("fill", colorAxis)
		text := points[i].Label
		if text == "" {
			text = strconv.Itoa(points[i].Index)
		}
		label.SetText(text)
	}

	xAxis := g.CreateElement("line")
	setLine(xAxis, f.left, f.bottom, f.right, f.bottom)
	xAxis.CreateAttr("stroke", colorAxis)
	yAxis := g.CreateElement("line")
	setLine(yAxis, f.left, f.top, f.left, f.bottom)
	yAxis.CreateAttr("stroke", colorAxis)
}

func (r *SVGRenderer) drawSeries(svg *etree.Element, f frame, points []dto.ChartPointDTO) {
	// Banda: P90 de izquierda a derecha y P10 de vuelta.
	band := make([]string, 0, 2*len(points))
	for _, p := range points {
		band = append(band, pt(f.x(float64(p.Index)), f.y(p.Pred90)))
	}
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		band = append(band, pt(f.x(float64(p.Index)), f.y(p.Pred10)))
	}
	poly := svg.CreateElement("polygon")
	poly.CreateAttr("class", "band")
	poly.CreateAttr("points", strings.Join(band, " "))
	poly.CreateAttr("fill", colorBand)
	poly.CreateAttr("fill-opacity", "0.3")
	poly.CreateAttr("stroke", "none")

	median := polyline(svg, f, points, func(p dto.ChartPointDTO) float64 { return p.Pred50 })
	median.CreateAttr("class", "median")
	median.CreateAttr("stroke", colorMedian)
	median.CreateAttr("stroke-width", "2")

	actual := polyline(svg, f, points, func(p dto.ChartPointDTO) float64 { return p.Actual })
	actual.CreateAttr("class", "actual")
	actual.CreateAttr("stroke", colorActual)
	actual.CreateAttr("stroke-width", "1.5")
	actual.CreateAttr("stroke-dasharray", "6 4")

	// Un solo punto no traza línea visible: marcadores
	if len(points) == 1 {
		p := points[0]
		for _, m := range []struct {
			v     float64
			color string
		}{{p.Pred50, colorMedian}, {p.Actual, colorActual}} {
			dot := svg.CreateElement("circle")
			dot.CreateAttr("cx", fnum(f.x(float64(p.Index))))
			dot.CreateAttr("cy", fnum(f.y(m.v)))
			dot.CreateAttr("r", "3")
			dot.CreateAttr("fill", m.color)
		}
	}
}

func (r *SVGRenderer) drawLegend(svg *etree.Element, f frame) {
	g := svg.CreateElement("g")
	g.CreateAttr("class", "legend")
	x := f.right - 380
	for _, item := range []struct{ name, color, dash, kind string }{
		{SeriesMedian, colorMedian, "", "line"},
		{SeriesBand, colorBand, "", "box"},
		{SeriesActual, colorActual, "6 4", "line"},
	} {
		if item.kind == "box" {
			box := g.CreateElement("rect")
			box.CreateAttr("x", fnum(x))
			box.CreateAttr("y", fnum(f.top-18))
			box.CreateAttr("width", "20")
			box.CreateAttr("height", "10")
			box.CreateAttr("fill", item.color)
			box.CreateAttr("fill-opacity", "0.3")
		} else {
			l := g.CreateElement("line")
			setLine(l, x, f.top-13, x+20, f.top-13)
			l.CreateAttr("stroke", item.color)
			l.CreateAttr("stroke-width", "2")
			if item.dash != "" {
				l.CreateAttr("stroke-dasharray", item.dash)
			}
		}
		t := g.CreateElement("text")
		t.CreateAttr("x", fnum(x+26))
		t.CreateAttr("y", fnum(f.top-9))
		t.SetText(item.name)
		x += 130
	}
}

func polyline(svg *etree.Element, f frame, points []dto.ChartPointDTO, val func(dto.ChartPointDTO) float64) *etree.Element {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, pt(f.x(float64(p.Index)), f.y(val(p))))
	}
	el := svg.CreateElement("polyline")
	el.CreateAttr("points", strings.Join(coords, " "))
	el.CreateAttr("fill", "none")
	return el
}

func setLine(el *etree.Element, x1, y1, x2, y2 float64) {
	el.CreateAttr("x1", fnum(x1))
	el.CreateAttr("y1", fnum(y1))
	el.CreateAttr("x2", fnum(x2))
	el.CreateAttr("y2", fnum(y2))
}

func pt(x, y float64) string { return fnum(x) + "," + fnum(y) }

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
