package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/chart"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/pdf"
)

func sampleView(rows int) *dto.DashboardViewDTO {
	v := &dto.DashboardViewDTO{
		Selection: dto.SelectionDTO{StoreID: "CA_1", ItemID: "FOODS_1"},
		Rows:      rows,
		Metrics: dto.MetricsDTO{
			RMSE: dto.MetricDTO{Label: "RMSE", Display: analytics.NotAvailable},
			MAE:  dto.MetricDTO{Label: "MAE", Display: analytics.NotAvailable},
			WAPE: dto.MetricDTO{Label: "WAPE", Display: analytics.NotAvailable},
		},
		Alerts: dto.AlertsDTO{
			Overstock:  dto.CountDTO{Label: "Overstock Alerts"},
			Understock: dto.CountDTO{Label: "Understock Alerts"},
		},
	}
	if rows > 0 {
		v.Metrics.RMSE.Value = decimal.NewNullDecimal(decimal.NewFromInt(1))
		v.Metrics.RMSE.Display = "1.00"
		v.Metrics.MAE.Display = "0.80"
		v.Metrics.WAPE.Display = "5.00%"
		v.Alerts.Overstock.Count = 1
		v.Chart.Points = []dto.ChartPointDTO{
			{Index: 0, Pred10: 8, Pred50: 10, Pred90: 12, Actual: 11},
		}
	}
	return v
}

func TestMarotoReportGenerator_ConGrafico(t *testing.T) {
	view := sampleView(1)
	png, err := chart.NewPNGRenderer().RenderChart(context.Background(), view.Chart, "CA_1 / FOODS_1")
	require.NoError(t, err)

	out, err := pdf.NewMarotoReportGenerator("test").GenerateReport(context.Background(), analytics.ReportData{
		ID:          "4b7c1d1e-0000-4000-8000-000000000000",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		View:        view,
		ChartPNG:    png,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "firma PDF")
}

func TestMarotoReportGenerator_SinFilas(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator("").GenerateReport(context.Background(), analytics.ReportData{
		ID:          "x",
		GeneratedAt: time.Now(),
		View:        sampleView(0),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportGenerator_VistaNula(t *testing.T) {
	_, err := pdf.NewMarotoReportGenerator("").GenerateReport(context.Background(), analytics.ReportData{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
