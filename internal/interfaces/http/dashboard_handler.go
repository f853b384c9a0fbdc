package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
)

// DashboardHandler maneja los endpoints JSON, gráficos y reporte del dashboard.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
	svg    appanalytics.ChartRenderer
	png    appanalytics.ChartRenderer
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(
	uc *appanalytics.DashboardUseCase,
	report *appanalytics.ReportUseCase,
	svg, png appanalytics.ChartRenderer,
) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report, svg: svg, png: png}
}

func parseSelection(c *fiber.Ctx) (dto.SelectionQuery, error) {
	var q dto.SelectionQuery
	err := c.QueryParser(&q)
	return q, err
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}

// GetDashboard godoc
// @Summary      Vista del dashboard para una selección
// @Description  Filtra la tabla resumen por (store, item) y devuelve serie, métricas
//               (RMSE, MAE, WAPE %) y alertas. Parámetros vacíos toman el primer valor
//               de cada dominio; una selección sin filas devuelve métricas "N/A".
// @Tags         dashboard
// @Produce      json
// @Param        store  query  string  false  "store_id"
// @Param        item   query  string  false  "item_id"
// @Success      200  {object}  dto.DashboardViewDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	q, err := parseSelection(c)
	if err != nil {
		return invalidParams(c)
	}
	view, err := h.uc.View(c.Context(), q.Store, q.Item)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// GetOptions godoc
// @Summary      Valores de los selectores
// @Description  Valores distintos de store_id e item_id en orden de primera aparición.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.OptionsDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/options [get]
func (h *DashboardHandler) GetOptions(c *fiber.Ctx) error {
	opts, err := h.uc.Options(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(opts)
}

// GetChartSVG godoc
// @Summary      Gráfico SVG de la selección
// @Description  Banda P10–P90, mediana y valor real. Una selección vacía dibuja el marco vacío.
// @Tags         dashboard
// @Produce      image/svg+xml
// @Param        store  query  string  false  "store_id"
// @Param        item   query  string  false  "item_id"
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/chart.svg [get]
func (h *DashboardHandler) GetChartSVG(c *fiber.Ctx) error {
	return h.sendChart(c, h.svg)
}

// GetChartPNG godoc
// @Summary      Gráfico PNG de la selección
// @Tags         dashboard
// @Produce      image/png
// @Param        store  query  string  false  "store_id"
// @Param        item   query  string  false  "item_id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse  "EMPTY_SELECTION"
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/chart.png [get]
func (h *DashboardHandler) GetChartPNG(c *fiber.Ctx) error {
	return h.sendChart(c, h.png)
}

func (h *DashboardHandler) sendChart(c *fiber.Ctx, r appanalytics.ChartRenderer) error {
	q, err := parseSelection(c)
	if err != nil {
		return invalidParams(c)
	}
	view, err := h.uc.View(c.Context(), q.Store, q.Item)
	if err != nil {
		return writeError(c, err)
	}
	out, err := r.RenderChart(c.Context(), view.Chart, chartTitle(view))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, r.ContentType())
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(out)
}

// GetReport godoc
// @Summary      Reporte PDF de la selección
// @Description  Gráfico, tabla de métricas y alertas en un PDF A4 con ID de reporte.
// @Tags         dashboard
// @Produce      application/pdf
// @Param        store  query  string  false  "store_id"
// @Param        item   query  string  false  "item_id"
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/report.pdf [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	q, err := parseSelection(c)
	if err != nil {
		return invalidParams(c)
	}
	pdfBytes, filename, err := h.report.DownloadReport(c.Context(), q.Store, q.Item)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// GetStatus godoc
// @Summary      Estado de la carga de datos
// @Description  Indica si la tabla resumen está cargada, filas leídas, filas descartadas y fuente.
//               Responde 503 con el mismo cuerpo cuando la carga falló.
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.DatasetStatusDTO
// @Failure      503  {object}  dto.DatasetStatusDTO
// @Router       /api/status [get]
func (h *DashboardHandler) GetStatus(c *fiber.Ctx) error {
	st := h.uc.Status(c.Context())
	if !st.Loaded {
		return c.Status(fiber.StatusServiceUnavailable).JSON(st)
	}
	return c.JSON(st)
}

func chartTitle(v *dto.DashboardViewDTO) string {
	return v.Selection.StoreID + " / " + v.Selection.ItemID
}
