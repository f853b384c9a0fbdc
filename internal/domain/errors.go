package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrDataUnavailable la fuente de datos no existe, no se puede leer o le faltan columnas obligatorias.
	ErrDataUnavailable = errors.New("datos no disponibles")
	// ErrMalformedRow una fila individual no se pudo interpretar; la fila se descarta.
	ErrMalformedRow = errors.New("fila malformada")
	// ErrEmptySelection la selección no tiene filas; solo es error para salidas que no admiten vacío (PNG).
	ErrEmptySelection = errors.New("la selección no tiene filas")
	ErrInvalidInput   = errors.New("entrada inválida")
)
