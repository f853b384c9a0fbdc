// Package filesource implementa repository.RecordSource sobre archivos locales:
// tablas delimitadas (.csv, .tsv) y hojas de cálculo (.xlsx, primera hoja).
package filesource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
	"github.com/jhoicas/forecast-dashboard/internal/domain/repository"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/tabular"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

var _ repository.RecordSource = (*FileSource)(nil)

// Config opciones de lectura del archivo.
type Config struct {
	Path      string
	Charset   string // "" o "utf-8"; "iso-8859-1"/"latin1" decodifica con x/text
	Delimiter string // vacío = según extensión (",", o tab para .tsv)
}

// FileSource lee la tabla resumen desde disco.
type FileSource struct {
	cfg Config
	log *logger.Logger
}

// NewFileSource construye la fuente. La ruta la define el operador (DATA_PATH).
func NewFileSource(cfg Config, log *logger.Logger) *FileSource {
	return &FileSource{cfg: cfg, log: log}
}

// Load lee el archivo completo. Errores de apertura, cabecera o columnas faltantes se
// devuelven envueltos en domain.ErrDataUnavailable; las filas malformadas se descartan.
func (s *FileSource) Load(ctx context.Context) (repository.LoadResult, error) {
	res := repository.LoadResult{Source: s.cfg.Path}
	if strings.TrimSpace(s.cfg.Path) == "" {
		return res, fmt.Errorf("%w: no se configuró DATA_PATH", domain.ErrDataUnavailable)
	}

	var (
		recs    []entity.Record
		skipped int
		err     error
	)
	switch strings.ToLower(filepath.Ext(s.cfg.Path)) {
	case ".xlsx", ".xlsm":
		recs, skipped, err = s.readXLSX(ctx)
	default:
		recs, skipped, err = s.readDelimited(ctx)
	}
	if err != nil {
		return res, err
	}

	res.Records = recs
	res.Skipped = skipped
	return res, nil
}

func (s *FileSource) delimiter() (rune, error) {
	d := s.cfg.Delimiter
	switch {
	case d == "" && strings.EqualFold(filepath.Ext(s.cfg.Path), ".tsv"):
		return '\t', nil
	case d == "":
		return ',', nil
	case d == `\t` || strings.EqualFold(d, "tab"):
		return '\t', nil
	}
	r := []rune(d)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: delimitador inválido %q", domain.ErrInvalidInput, d)
	}
	return r[0], nil
}

func (s *FileSource) open() (io.ReadCloser, io.Reader, error) {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrDataUnavailable, s.cfg.Path, err)
	}
	switch strings.ToLower(strings.TrimSpace(s.cfg.Charset)) {
	case "", "utf-8", "utf8":
		return f, f, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return f, transform.NewReader(f, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return f, transform.NewReader(f, charmap.Windows1252.NewDecoder()), nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("%w: charset no soportado %q", domain.ErrDataUnavailable, s.cfg.Charset)
	}
}

func (s *FileSource) readDelimited(ctx context.Context) ([]entity.Record, int, error) {
	comma, err := s.delimiter()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	closer, in, err := s.open()
	if err != nil {
		return nil, 0, err
	}
	defer closer.Close()

	r := csv.NewReader(in)
	r.Comma = comma
	r.FieldsPerRecord = -1 // el ancho se valida por fila para poder descartar solo la fila

	cols, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: archivo vacío %s", domain.ErrDataUnavailable, s.cfg.Path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: leer cabecera: %v", domain.ErrDataUnavailable, err)
	}
	header, err := tabular.NewHeader(cols)
	if err != nil {
		return nil, 0, err
	}

	var (
		out     []entity.Record
		skipped int
		line    = 1
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped++
			s.warnRow(line, err)
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: leer %s: %v", domain.ErrDataUnavailable, s.cfg.Path, err)
		}
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		if isBlank(row) {
			continue
		}
		if len(row) != len(cols) {
			skipped++
			s.warnRow(line, fmt.Errorf("%w: %d campos, se esperaban %d", domain.ErrMalformedRow, len(row), len(cols)))
			continue
		}
		rec, err := header.ParseRow(row)
		if err != nil {
			skipped++
			s.warnRow(line, err)
			continue
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

func (s *FileSource) readXLSX(ctx context.Context) ([]entity.Record, int, error) {
	f, err := excelize.OpenFile(s.cfg.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: abrir %s: %v", domain.ErrDataUnavailable, s.cfg.Path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("%w: libro sin hojas %s", domain.ErrDataUnavailable, s.cfg.Path)
	}
	// Valores crudos: el formato de celda ("0%", "0.00") alteraría el número leído
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: leer hoja %q: %v", domain.ErrDataUnavailable, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: hoja vacía %q", domain.ErrDataUnavailable, sheets[0])
	}
	header, err := tabular.NewHeader(rows[0])
	if err != nil {
		return nil, 0, err
	}

	var (
		out     []entity.Record
		skipped int
	)
	for i, row := range rows[1:] {
		line := i + 2
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		// excelize omite las celdas vacías al final de la fila
		if isBlank(row) {
			continue
		}
		rec, err := header.ParseRow(row)
		if err != nil {
			skipped++
			s.warnRow(line, err)
			continue
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

func (s *FileSource) warnRow(line int, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn().
		Str("source", s.cfg.Path).
		Int("line", line).
		Err(err).
		Msg("fila descartada")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
