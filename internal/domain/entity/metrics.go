package entity

import "github.com/shopspring/decimal"

// DerivedMetrics agregados de una FilteredView.
// Valid=false en RMSE/MAE/WAPE significa vista vacía: se muestra "N/A", nunca NaN.
type DerivedMetrics struct {
	RMSE decimal.NullDecimal
	MAE  decimal.NullDecimal
	WAPE decimal.NullDecimal // ya escalado ×100 (porcentaje)

	Overstock  int
	Understock int
	Rows       int
}
