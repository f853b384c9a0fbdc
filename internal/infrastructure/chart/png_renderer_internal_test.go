package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gochart "github.com/wcharczuk/go-chart/v2"
)

func TestLegendSeries_OmiteBordeInferior(t *testing.T) {
	series := []gochart.Series{
		gochart.ContinuousSeries{Name: SeriesBand},
		gochart.ContinuousSeries{Name: bandLowerSeries},
		gochart.ContinuousSeries{Name: SeriesMedian},
		gochart.ContinuousSeries{Name: SeriesActual},
	}

	var names []string
	for _, s := range legendSeries(series) {
		names = append(names, s.GetName())
	}
	assert.Equal(t, []string{SeriesBand, SeriesMedian, SeriesActual}, names)
	assert.Len(t, series, 4, "no modifica las series del gráfico")
}
