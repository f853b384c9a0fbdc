package repository

import (
	"context"

	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
)

// LoadResult resultado crudo de una carga completa de la tabla resumen.
type LoadResult struct {
	Records []entity.Record
	Skipped int    // filas malformadas descartadas (con warning en el log)
	Source  string // descripción legible de la fuente (ruta o tabla)
}

// RecordSource fuente de la tabla resumen (archivo delimitado, xlsx o PostgreSQL).
// Las implementaciones devuelven errores envueltos en domain.ErrDataUnavailable
// cuando la fuente falta, no se puede leer o le faltan columnas obligatorias.
type RecordSource interface {
	Load(ctx context.Context) (LoadResult, error)
}
