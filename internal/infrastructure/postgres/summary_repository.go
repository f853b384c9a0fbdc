package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/forecast-dashboard/internal/domain"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
	"github.com/jhoicas/forecast-dashboard/internal/domain/repository"
	"github.com/jhoicas/forecast-dashboard/internal/infrastructure/tabular"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

var _ repository.RecordSource = (*SummaryRepo)(nil)

// SummaryRepo lee la tabla resumen de pronósticos desde PostgreSQL (solo lectura).
type SummaryRepo struct {
	tx      *TxRunner
	table   string
	orderBy string
	log     *logger.Logger
}

// NewSummaryRepository construye el adaptador. table admite "schema.tabla";
// orderBy es obligatorio (columna de orden temporal, por defecto row_num).
func NewSummaryRepository(pool *pgxpool.Pool, table, orderBy string, log *logger.Logger) *SummaryRepo {
	return &SummaryRepo{tx: NewTxRunner(pool), table: table, orderBy: orderBy, log: log}
}

// summaryRow fila cruda tal como la devuelve la consulta. NUMERIC se escanea a decimal
// (codec pgx-shopspring-decimal); los NULL se detectan con NullDecimal / *string.
type summaryRow struct {
	StoreID, ItemID, Label         *string
	Pred10, Pred50, Pred90, Actual decimal.NullDecimal
	RMSE, MAE, WAPE                decimal.NullDecimal
	OverstockFlag, UnderstockFlag  *string
}

// Load ejecuta la consulta completa dentro de una foto de solo lectura.
// Tabla o columna inexistente → domain.ErrDataUnavailable.
func (r *SummaryRepo) Load(ctx context.Context) (repository.LoadResult, error) {
	res := repository.LoadResult{Source: "postgres:" + r.table}

	query, err := buildSummaryQuery(r.table, r.orderBy)
	if err != nil {
		return res, err
	}

	err = r.tx.ReadSnapshot(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			n++
			var raw summaryRow
			if err := rows.Scan(
				&raw.StoreID, &raw.ItemID, &raw.Label,
				&raw.Pred10, &raw.Pred50, &raw.Pred90, &raw.Actual,
				&raw.RMSE, &raw.MAE, &raw.WAPE,
				&raw.OverstockFlag, &raw.UnderstockFlag,
			); err != nil {
				res.Skipped++
				r.warnRow(n, fmt.Errorf("%w: scan: %v", domain.ErrMalformedRow, err))
				continue
			}
			rec, err := raw.toRecord()
			if err != nil {
				res.Skipped++
				r.warnRow(n, err)
				continue
			}
			res.Records = append(res.Records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		res.Records, res.Skipped = nil, 0
		if isMissingRelation(err) {
			return res, fmt.Errorf("%w: %s: %v", domain.ErrDataUnavailable, r.table, err)
		}
		return res, fmt.Errorf("%w: summary.Load: %v", domain.ErrDataUnavailable, err)
	}
	return res, nil
}

func (r *SummaryRepo) warnRow(n int, err error) {
	if r.log == nil {
		return
	}
	r.log.Warn().Str("source", r.table).Int("row", n).Err(err).Msg("fila descartada")
}

// buildSummaryQuery arma el SELECT con identificadores saneados por pgx.
func buildSummaryQuery(table, orderBy string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("%w: DB_TABLE vacío", domain.ErrDataUnavailable)
	}
	// Sin ORDER BY PostgreSQL no garantiza orden y la posición de la fila es el eje temporal.
	if strings.TrimSpace(orderBy) == "" {
		return "", fmt.Errorf("%w: DB_ORDER_BY vacío", domain.ErrDataUnavailable)
	}
	tbl := pgx.Identifier(strings.Split(table, ".")).Sanitize()
	col := pgx.Identifier{strings.TrimSpace(orderBy)}.Sanitize()
	label := col + "::text"
	order := "\n\tORDER BY " + col

	return fmt.Sprintf(`
	SELECT
	    store_id::text,
	    item_id::text,
	    %s,
	    pred_10::numeric,
	    pred_50::numeric,
	    pred_90::numeric,
	    actual::numeric,
	    rmse::numeric,
	    mae::numeric,
	    wape::numeric,
	    overstock_flag::text,
	    understock_flag::text
	FROM %s%s`, label, tbl, order), nil
}

func (raw summaryRow) toRecord() (entity.Record, error) {
	var rec entity.Record
	if raw.StoreID == nil || raw.ItemID == nil || *raw.StoreID == "" || *raw.ItemID == "" {
		return rec, fmt.Errorf("%w: store_id/item_id nulo", domain.ErrMalformedRow)
	}
	rec.StoreID = strings.TrimSpace(*raw.StoreID)
	rec.ItemID = strings.TrimSpace(*raw.ItemID)
	if raw.Label != nil {
		rec.Label = *raw.Label
	}

	nums := []struct {
		col string
		src decimal.NullDecimal
		dst *float64
	}{
		{"pred_10", raw.Pred10, &rec.Pred10},
		{"pred_50", raw.Pred50, &rec.Pred50},
		{"pred_90", raw.Pred90, &rec.Pred90},
		{"actual", raw.Actual, &rec.Actual},
		{"rmse", raw.RMSE, &rec.RMSE},
		{"mae", raw.MAE, &rec.MAE},
		{"wape", raw.WAPE, &rec.WAPE},
	}
	for _, n := range nums {
		if !n.src.Valid {
			return rec, fmt.Errorf("%w: columna %q nula", domain.ErrMalformedRow, n.col)
		}
		*n.dst = n.src.Decimal.InexactFloat64()
	}

	flags := []struct {
		col string
		src *string
		dst *bool
	}{
		{"overstock_flag", raw.OverstockFlag, &rec.Overstock},
		{"understock_flag", raw.UnderstockFlag, &rec.Understock},
	}
	for _, f := range flags {
		if f.src == nil {
			return rec, fmt.Errorf("%w: columna %q nula", domain.ErrMalformedRow, f.col)
		}
		v, err := tabular.ParseFlag(*f.src)
		if err != nil {
			return rec, fmt.Errorf("%w: columna %q: %v", domain.ErrMalformedRow, f.col, err)
		}
		*f.dst = v
	}
	return rec, nil
}
