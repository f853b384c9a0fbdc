package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/forecast-dashboard/internal/application/analytics"
	"github.com/jhoicas/forecast-dashboard/internal/domain/repository"
	infrachart "github.com/jhoicas/forecast-dashboard/internal/infrastructure/chart"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/filesource"
	infrapdf "github.com/jhoicas/forecast-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/forecast-dashboard/internal/interfaces/http"
	"github.com/jhoicas/forecast-dashboard/pkg/config"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.Data.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Fuente de la tabla resumen: archivo (csv/tsv/xlsx) o PostgreSQL
	var source repository.RecordSource
	switch cfg.Data.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewSummaryRepository(pool, cfg.DB.Table, cfg.DB.OrderBy, log)
	default:
		if cfg.Data.Path == "" {
			log.Warn().Msg("DATA_PATH vacío: el dashboard responderá 503 hasta configurarlo")
		}
		source = filesource.NewFileSource(filesource.Config{
			Path:      cfg.Data.Path,
			Charset:   cfg.Data.Charset,
			Delimiter: cfg.Data.Delimiter,
		}, log)
	}

	dashboardUC := appanalytics.NewDashboardUseCase(source, log)

	// Carga única al arrancar; un fallo queda en caché y se informa con 503.
	if _, err := dashboardUC.Load(ctx); err != nil {
		log.Error().Err(err).Msg("tabla resumen no disponible")
	}

	svgChart := infrachart.NewSVGRenderer()
	pngChart := infrachart.NewPNGRenderer()
	reportUC := appanalytics.NewReportUseCase(dashboardUC, pngChart, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Forecast Dashboard API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		SVGChart:    svgChart,
		PNGChart:    pngChart,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
