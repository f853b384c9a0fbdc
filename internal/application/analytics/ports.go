package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
)

// ChartRenderer dibuja la serie de la vista (mediana, real y banda P10–P90).
type ChartRenderer interface {
	RenderChart(ctx context.Context, chart dto.ChartDTO, title string) ([]byte, error)
	ContentType() string
}

// ReportData todo lo necesario para el reporte PDF de una selección.
type ReportData struct {
	ID          string
	GeneratedAt time.Time
	View        *dto.DashboardViewDTO
	ChartPNG    []byte // vacío si la selección no tiene filas
}

// ReportPDFGenerator genera el reporte PDF del dashboard.
type ReportPDFGenerator interface {
	GenerateReport(ctx context.Context, data ReportData) ([]byte, error)
}
