package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

type pageData struct {
	AppName string
	View    *dto.DashboardViewDTO
	Chart   template.HTML // SVG generado por etree (atributos y textos ya escapados)
	Metrics []dto.MetricDTO
	Alerts  []dto.CountDTO
}

type errorPageData struct {
	AppName string
	Status  int
	Code    string
	Message string
}

// PageHandler sirve la página HTML del dashboard.
type PageHandler struct {
	uc      *appanalytics.DashboardUseCase
	chart   appanalytics.ChartRenderer
	appName string
	log     *logger.Logger
}

// NewPageHandler construye el handler. chart debe producir SVG (se embebe en línea).
func NewPageHandler(uc *appanalytics.DashboardUseCase, chart appanalytics.ChartRenderer, appName string, log *logger.Logger) *PageHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{uc: uc, chart: chart, appName: appName, log: log}
}

// Dashboard GET /?store=&item=
//
// Cada cambio de selector reenvía el formulario y recalcula la vista completa.
// Si los datos no están disponibles responde 503 con la página de error y no
// muestra el dashboard.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	var q dto.SelectionQuery
	if err := c.QueryParser(&q); err != nil {
		return h.renderError(c, fiber.StatusBadRequest, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}

	view, err := h.uc.View(c.Context(), q.Store, q.Item)
	if err != nil {
		status, code := errorStatus(err)
		msg := "error interno"
		if errors.Is(err, domain.ErrDataUnavailable) {
			msg = "La tabla resumen de pronósticos no está disponible. Revise DATA_PATH o la conexión a la base de datos."
		}
		h.log.Error().Err(err).Int("status", status).Msg("página del dashboard")
		return h.renderError(c, status, code, msg)
	}

	svg, err := h.chart.RenderChart(c.Context(), view.Chart, chartTitle(view))
	if err != nil {
		h.log.Error().Err(err).Msg("render del gráfico")
		return h.renderError(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
	}

	return h.render(c, fiber.StatusOK, "dashboard.gohtml", pageData{
		AppName: h.appName,
		View:    view,
		Chart:   template.HTML(svg), //nolint:gosec // salida de etree, escapada
		Metrics: []dto.MetricDTO{view.Metrics.RMSE, view.Metrics.MAE, view.Metrics.WAPE},
		Alerts:  []dto.CountDTO{view.Alerts.Overstock, view.Alerts.Understock},
	})
}

func (h *PageHandler) renderError(c *fiber.Ctx, status int, code, msg string) error {
	return h.render(c, status, "error.gohtml", errorPageData{
		AppName: h.appName, Status: status, Code: code, Message: msg,
	})
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
