package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardViewDTO modelo de render para la selección actual: respuesta de
// GET /api/dashboard y fuente de la página HTML, los gráficos y el reporte PDF.
type DashboardViewDTO struct {
	Selection SelectionDTO `json:"selection"`
	Stores    []string     `json:"stores"` // dominio de store_id (orden de primera aparición)
	Items     []string     `json:"items"`  // dominio de item_id
	Rows      int          `json:"rows"`   // filas de la vista filtrada
	Chart     ChartDTO     `json:"chart"`
	Metrics   MetricsDTO   `json:"metrics"`
	Alerts    AlertsDTO    `json:"alerts"`
}

// SelectionDTO par (store, item) efectivamente aplicado.
type SelectionDTO struct {
	StoreID string `json:"store_id"`
	ItemID  string `json:"item_id"`
}

// ChartDTO serie temporal de la vista: mediana, real y banda P10–P90.
type ChartDTO struct {
	Points []ChartPointDTO `json:"points"`
}

// ChartPointDTO un punto por fila de la vista; Index es la posición dentro de la vista.
type ChartPointDTO struct {
	Index  int     `json:"index"`
	Label  string  `json:"label,omitempty"`
	Pred10 float64 `json:"pred_10"`
	Pred50 float64 `json:"pred_50"`
	Pred90 float64 `json:"pred_90"`
	Actual float64 `json:"actual"`
}

// MetricDTO métrica escalar; Value es null y Display "N/A" cuando la vista está vacía.
type MetricDTO struct {
	Label   string              `json:"label"`
	Value   decimal.NullDecimal `json:"value"`
	Display string              `json:"display"`
}

// MetricsDTO precisión del pronóstico sobre la vista.
type MetricsDTO struct {
	RMSE MetricDTO `json:"rmse"`
	MAE  MetricDTO `json:"mae"`
	WAPE MetricDTO `json:"wape"` // porcentaje (×100)
}

// CountDTO contador etiquetado.
type CountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AlertsDTO señales de inventario sumadas sobre la vista.
type AlertsDTO struct {
	Overstock  CountDTO `json:"overstock"`
	Understock CountDTO `json:"understock"`
}

// OptionsDTO respuesta de GET /api/options.
type OptionsDTO struct {
	Stores []string `json:"stores"`
	Items  []string `json:"items"`
}

// DatasetStatusDTO respuesta de GET /api/status.
type DatasetStatusDTO struct {
	Loaded   bool       `json:"loaded"`
	Rows     int        `json:"rows"`
	Skipped  int        `json:"skipped"`
	Source   string     `json:"source"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// SelectionQuery parámetros de consulta ?store=&item= (vacíos = primer valor de cada dominio).
type SelectionQuery struct {
	Store string `query:"store"`
	Item  string `query:"item"`
}
