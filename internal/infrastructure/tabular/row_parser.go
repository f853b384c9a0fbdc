// Package tabular interpreta filas de texto de la tabla resumen (CSV, TSV, xlsx o
// columnas TEXT de PostgreSQL) y las convierte en entity.Record.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
)

// LabelColumn columna opcional con la etiqueta temporal de cada fila.
const LabelColumn = "date"

// Header mapea nombre de columna normalizado → posición en la fila.
type Header struct {
	index map[string]int
}

// NewHeader valida la cabecera. Los nombres se comparan sin espacios y sin mayúsculas.
// Si falta alguna columna obligatoria devuelve un error envuelto en domain.ErrDataUnavailable.
func NewHeader(cols []string) (*Header, error) {
	h := &Header{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		name := normalize(c)
		if name == "" {
			continue
		}
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	var missing []string
	for _, req := range entity.RequiredColumns {
		if _, ok := h.index[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan columnas obligatorias: %s",
			domain.ErrDataUnavailable, strings.Join(missing, ", "))
	}
	return h, nil
}

// HasLabel indica si la cabecera trae la columna opcional "date".
func (h *Header) HasLabel() bool {
	_, ok := h.index[LabelColumn]
	return ok
}

// ParseRow convierte una fila en Record. Las filas con campos faltantes, números no
// finitos o banderas ilegibles devuelven un error envuelto en domain.ErrMalformedRow.
func (h *Header) ParseRow(row []string) (entity.Record, error) {
	var rec entity.Record
	get := func(col string) (string, error) {
		i := h.index[col]
		if i >= len(row) {
			return "", fmt.Errorf("%w: falta la columna %q", domain.ErrMalformedRow, col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var err error
	if rec.StoreID, err = get("store_id"); err != nil {
		return rec, err
	}
	if rec.ItemID, err = get("item_id"); err != nil {
		return rec, err
	}
	if rec.StoreID == "" || rec.ItemID == "" {
		return rec, fmt.Errorf("%w: store_id/item_id vacío", domain.ErrMalformedRow)
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{"pred_10", &rec.Pred10},
		{"pred_50", &rec.Pred50},
		{"pred_90", &rec.Pred90},
		{"actual", &rec.Actual},
		{"rmse", &rec.RMSE},
		{"mae", &rec.MAE},
		{"wape", &rec.WAPE},
	}
	for _, f := range floats {
		s, err := get(f.col)
		if err != nil {
			return rec, err
		}
		v, err := ParseFloat(s)
		if err != nil {
			return rec, fmt.Errorf("%w: columna %q: %v", domain.ErrMalformedRow, f.col, err)
		}
		*f.dst = v
	}

	flags := []struct {
		col string
		dst *bool
	}{
		{"overstock_flag", &rec.Overstock},
		{"understock_flag", &rec.Understock},
	}
	for _, f := range flags {
		s, err := get(f.col)
		if err != nil {
			return rec, err
		}
		v, err := ParseFlag(s)
		if err != nil {
			return rec, fmt.Errorf("%w: columna %q: %v", domain.ErrMalformedRow, f.col, err)
		}
		*f.dst = v
	}

	if h.HasLabel() {
		if i := h.index[LabelColumn]; i < len(row) {
			rec.Label = strings.TrimSpace(row[i])
		}
	}
	return rec, nil
}

// ParseFloat acepta solo números finitos; vacío, NaN e Inf son errores.
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("valor vacío")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("número inválido %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("número no finito %q", s)
	}
	return v, nil
}

// ParseFlag interpreta banderas 0/1 (también 0.0/1.0), true/false, yes/no y t/f.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("bandera inválida %q", s)
}

func normalize(col string) string {
	// BOM de UTF-8 en la primera columna (archivos exportados desde Excel)
	col = strings.TrimPrefix(col, "\ufeff")
	return strings.ToLower(strings.TrimSpace(col))
}
