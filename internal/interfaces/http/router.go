package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	SVGChart    appanalytics.ChartRenderer
	PNGChart    appanalytics.ChartRenderer
	Logger      *logger.Logger
}

// Router registra la página, la API y el health check.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Página HTML (maneja ella misma la página de error 503)
	pageHandler := NewPageHandler(deps.DashboardUC, deps.SVGChart, deps.AppName, deps.Logger)
	app.Get("/", pageHandler.Dashboard)

	api := app.Group("/api")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.SVGChart, deps.PNGChart)

	// Estado de la carga (responde aunque la carga haya fallado)
	api.Get("/status", dashboardHandler.GetStatus)

	// Rutas que requieren la tabla resumen cargada
	data := api.Group("/", RequireDataset(deps.DashboardUC))
	data.Get("/dashboard", dashboardHandler.GetDashboard)
	data.Get("/options", dashboardHandler.GetOptions)
	data.Get("/chart.svg", dashboardHandler.GetChartSVG)
	data.Get("/chart.png", dashboardHandler.GetChartPNG)
	data.Get("/report.pdf", dashboardHandler.GetReport)
}
