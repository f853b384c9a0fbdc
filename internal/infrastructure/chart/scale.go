// Package chart dibuja la serie de pronóstico de una vista: banda P10–P90
// sombreada ("80% Interval"), mediana ("Predicted Median") y valor real ("Actual").
//
// SVGRenderer construye el SVG con etree para la página HTML; PNGRenderer usa
// go-chart para el PNG que se embebe en el reporte PDF.
package chart

import (
	"math"

	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
)

// Nombres de las series, compartidos por ambos renderers.
const (
	SeriesBand   = "80% Interval"
	SeriesMedian = "Predicted Median"
	SeriesActual = "Actual"
)

// valueRange límites del eje y con un margen del 5%; nunca de ancho cero.
func valueRange(points []dto.ChartPointDTO) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		for _, v := range []float64{p.Pred10, p.Pred50, p.Pred90, p.Actual} {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if len(points) == 0 {
		return 0, 1
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// xRange límites del eje x (posición dentro de la vista); un solo punto queda centrado.
func xRange(n int) (lo, hi float64) {
	if n <= 1 {
		return -0.5, 0.5
	}
	return 0, float64(n - 1)
}
