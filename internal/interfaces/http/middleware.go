package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

// datasetLoader es el contrato mínimo que necesita el middleware para verificar la carga.
// Lo implementa *analytics.DashboardUseCase.
type datasetLoader interface {
	Load(ctx context.Context) (*entity.Dataset, error)
}

// RequireDataset devuelve un middleware Fiber que corta la petición si la tabla
// resumen no se pudo cargar.
//
// Comportamiento:
//   - 503 Service Unavailable → fuente faltante, ilegible o sin columnas requeridas.
//   - 500 Internal            → cualquier otro fallo de carga.
//
// La carga ocurre una sola vez; las peticiones siguientes reciben el resultado en caché.
func RequireDataset(loader datasetLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := loader.Load(c.Context()); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// RequestLogger registra cada petición con zerolog (método, ruta, status, latencia).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
