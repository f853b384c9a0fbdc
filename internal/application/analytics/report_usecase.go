package analytics

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ReportUseCase genera el reporte PDF de la selección actual: mismo ciclo
// filtrar → agregar que la página, más el gráfico rasterizado.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	chart     ChartRenderer // debe producir PNG
	generator ReportPDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(dashboard *DashboardUseCase, chart ChartRenderer, generator ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, chart: chart, generator: generator, now: time.Now}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// DownloadReport devuelve los bytes del PDF y un nombre de archivo seguro.
// Una selección sin filas produce un reporte con métricas "N/A" y sin gráfico.
func (uc *ReportUseCase) DownloadReport(ctx context.Context, store, item string) (pdfBytes []byte, filename string, err error) {
	view, err := uc.dashboard.View(ctx, store, item)
	if err != nil {
		return nil, "", err
	}

	data := ReportData{
		ID:          uuid.NewString(),
		GeneratedAt: uc.now(),
		View:        view,
	}
	if view.Rows > 0 {
		title := fmt.Sprintf("%s / %s", view.Selection.StoreID, view.Selection.ItemID)
		png, err := uc.chart.RenderChart(ctx, view.Chart, title)
		if err != nil {
			return nil, "", fmt.Errorf("report: gráfico: %w", err)
		}
		data.ChartPNG = png
	}

	pdfBytes, err = uc.generator.GenerateReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}

	filename = unsafeFilename.ReplaceAllString(
		fmt.Sprintf("forecast_%s_%s.pdf", view.Selection.StoreID, view.Selection.ItemID), "_")
	return pdfBytes, filename, nil
}
