package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
)

// NotAvailable texto mostrado cuando la media no está definida (vista vacía).
const NotAvailable = "N/A"

var hundred = decimal.NewFromInt(100)

// Domain valores distintos de field, en orden de primera aparición.
func Domain(ds *entity.Dataset, field entity.Field) []string {
	return ds.Domain(field)
}

// ResolveSelection aplica los valores por defecto del estado inicial: una entrada
// vacía toma el primer valor del dominio. Una entrada no vacía se respeta tal cual,
// aunque no exista en el dominio (produce una vista vacía, no un error).
func ResolveSelection(ds *entity.Dataset, store, item string) entity.Selection {
	sel := entity.Selection{StoreID: store, ItemID: item}
	if sel.StoreID == "" {
		if stores := ds.Domain(entity.FieldStore); len(stores) > 0 {
			sel.StoreID = stores[0]
		}
	}
	if sel.ItemID == "" {
		if items := ds.Domain(entity.FieldItem); len(items) > 0 {
			sel.ItemID = items[0]
		}
	}
	return sel
}

// Filter conjunción exacta sobre store_id e item_id, conservando el orden del Dataset.
// Sin coincidencias devuelve una vista vacía.
func Filter(ds *entity.Dataset, sel entity.Selection) entity.FilteredView {
	view := entity.FilteredView{Selection: sel, Records: make([]entity.Record, 0)}
	for i := 0; i < ds.Len(); i++ {
		if r := ds.At(i); sel.Matches(r) {
			view.Records = append(view.Records, r)
		}
	}
	return view
}

// Aggregate función pura sobre la vista: medias de rmse/mae/wape (wape ×100) y
// sumas enteras de las banderas. Con la vista vacía las medias quedan inválidas
// (se muestran "N/A") y los contadores en cero.
func Aggregate(view entity.FilteredView) entity.DerivedMetrics {
	m := entity.DerivedMetrics{Rows: view.Len()}

	var rmse, mae, wape decimal.Decimal
	for _, r := range view.Records {
		rmse = rmse.Add(decimal.NewFromFloat(r.RMSE))
		mae = mae.Add(decimal.NewFromFloat(r.MAE))
		wape = wape.Add(decimal.NewFromFloat(r.WAPE))
		if r.Overstock {
			m.Overstock++
		}
		if r.Understock {
			m.Understock++
		}
	}
	if m.Rows == 0 {
		return m
	}

	n := decimal.NewFromInt(int64(m.Rows))
	m.RMSE = decimal.NewNullDecimal(rmse.Div(n))
	m.MAE = decimal.NewNullDecimal(mae.Div(n))
	m.WAPE = decimal.NewNullDecimal(wape.Div(n).Mul(hundred))
	return m
}

// FormatMetric dos decimales más el sufijo, o "N/A".
func FormatMetric(v decimal.NullDecimal, suffix string) string {
	if !v.Valid {
		return NotAvailable
	}
	return v.Decimal.StringFixed(2) + suffix
}

func metricDTO(label string, v decimal.NullDecimal, suffix string) dto.MetricDTO {
	out := dto.MetricDTO{Label: label, Display: FormatMetric(v, suffix)}
	if v.Valid {
		out.Value = decimal.NewNullDecimal(v.Decimal.Round(2))
	}
	return out
}
