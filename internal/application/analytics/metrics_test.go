package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
)

func TestFilter_SoloCoincidenciasExactas(t *testing.T) {
	ds := entity.NewDataset(sampleRecords())
	sel := entity.Selection{StoreID: "CA_1", ItemID: "FOODS_1"}

	view := analytics.Filter(ds, sel)

	require.Equal(t, 2, view.Len())
	for _, r := range view.Records {
		assert.Equal(t, "CA_1", r.StoreID, "CA_10 no es coincidencia parcial válida")
		assert.Equal(t, "FOODS_1", r.ItemID)
	}
	assert.Equal(t, sel, view.Selection)
}

func TestFilter_SinCoincidencias_VistaVacia(t *testing.T) {
	ds := entity.NewDataset(sampleRecords())
	view := analytics.Filter(ds, entity.Selection{StoreID: "CA", ItemID: "FOODS_1"})
	assert.True(t, view.Empty())
	assert.NotNil(t, view.Records)
}

func TestAggregate_EsPura(t *testing.T) {
	ds := entity.NewDataset(sampleRecords())
	view := analytics.Filter(ds, entity.Selection{StoreID: "CA_1", ItemID: "FOODS_1"})

	m1 := analytics.Aggregate(view)
	m2 := analytics.Aggregate(view)
	assert.Equal(t, m1, m2)
}

func TestAggregate_WAPEEsPorcentaje(t *testing.T) {
	view := entity.FilteredView{Records: []entity.Record{
		{WAPE: 0.123},
		{WAPE: 0.456},
		{WAPE: 0.0001},
	}}
	m := analytics.Aggregate(view)
	require.True(t, m.WAPE.Valid)

	// 100 × (0.123+0.456+0.0001)/3 = 19.30333…
	assert.Equal(t, "19.30%", analytics.FormatMetric(m.WAPE, "%"))
	assert.True(t, m.WAPE.Decimal.Round(2).Equal(decimal.RequireFromString("19.30")))
}

func TestAggregate_VistaVacia(t *testing.T) {
	m := analytics.Aggregate(entity.FilteredView{})
	assert.False(t, m.RMSE.Valid)
	assert.False(t, m.MAE.Valid)
	assert.False(t, m.WAPE.Valid)
	assert.Equal(t, 0, m.Overstock)
	assert.Equal(t, 0, m.Understock)
	assert.Equal(t, 0, m.Rows)
	assert.Equal(t, "N/A", analytics.FormatMetric(m.RMSE, ""))
	assert.Equal(t, "N/A", analytics.FormatMetric(m.WAPE, "%"))
}

func TestResolveSelection(t *testing.T) {
	ds := entity.NewDataset(sampleRecords())

	assert.Equal(t, entity.Selection{StoreID: "CA_1", ItemID: "FOODS_1"}, analytics.ResolveSelection(ds, "", ""))
	assert.Equal(t, entity.Selection{StoreID: "TX_1", ItemID: "FOODS_1"}, analytics.ResolveSelection(ds, "TX_1", ""))
	assert.Equal(t, entity.Selection{StoreID: "CA_1", ItemID: "X"}, analytics.ResolveSelection(ds, "", "X"))

	empty := entity.NewDataset(nil)
	assert.Equal(t, entity.Selection{}, analytics.ResolveSelection(empty, "", ""))
}

func TestDomain_OrdenEstable(t *testing.T) {
	ds := entity.NewDataset(sampleRecords())
	first := analytics.Domain(ds, entity.FieldStore)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, analytics.Domain(ds, entity.FieldStore))
	}
	assert.Empty(t, analytics.Domain(ds, entity.Field("rmse")))
}

// Los empates se redondean alejándose de cero sobre el valor decimal exacto.
func TestFormatMetric_EmpatesAlejadosDeCero(t *testing.T) {
	view := entity.FilteredView{Records: []entity.Record{{RMSE: 1.005, MAE: 2.675, WAPE: 0.00125}}}
	m := analytics.Aggregate(view)

	assert.Equal(t, "1.01", analytics.FormatMetric(m.RMSE, ""))
	assert.Equal(t, "2.68", analytics.FormatMetric(m.MAE, ""))
	assert.Equal(t, "0.13%", analytics.FormatMetric(m.WAPE, "%"))
	assert.Equal(t, "-1.01", analytics.FormatMetric(decimal.NewNullDecimal(decimal.RequireFromString("-1.005")), ""))
}
