// Package analytics contiene el controlador del dashboard de pronósticos:
// carga única de la tabla resumen y el ciclo filtrar → agregar → render.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain/entity"
	"github.com/jhoicas/forecast-dashboard/internal/domain/repository"
	"github.com/jhoicas/forecast-dashboard/pkg/logger"
)

// DashboardUseCase es dueño del Dataset y del ciclo por interacción.
//
// Fuente de datos: RecordSource (lectura única, protegida por sync.Once).
// Tras la carga el Dataset es inmutable; filtrar y agregar no requieren locks.
type DashboardUseCase struct {
	source repository.RecordSource
	log    *logger.Logger

	once     sync.Once
	dataset  *entity.Dataset
	skipped  int
	srcDesc  string
	loadedAt time.Time
	err      error
}

// NewDashboardUseCase construye el caso de uso. No lee la fuente todavía.
func NewDashboardUseCase(source repository.RecordSource, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{source: source, log: log}
}

// Load lee la fuente exactamente una vez por vida del proceso. Las llamadas
// siguientes (incluidas las concurrentes) devuelven el mismo Dataset o el mismo error.
// El error de una fuente faltante o malformada envuelve domain.ErrDataUnavailable.
func (uc *DashboardUseCase) Load(ctx context.Context) (*entity.Dataset, error) {
	uc.once.Do(func() {
		// La carga se comparte entre peticiones: no debe cancelarse con la primera.
		loadCtx := context.WithoutCancel(ctx)
		start := time.Now()

		res, err := uc.source.Load(loadCtx)
		uc.srcDesc = res.Source
		if err != nil {
			uc.err = fmt.Errorf("dashboard: cargar datos: %w", err)
			uc.log.Error().Err(err).Str("source", res.Source).Msg("no se pudo cargar la tabla resumen")
			return
		}

		uc.dataset = entity.NewDataset(res.Records)
		uc.skipped = res.Skipped
		uc.loadedAt = time.Now()
		uc.log.Info().
			Str("source", res.Source).
			Int("rows", uc.dataset.Len()).
			Int("skipped", res.Skipped).
			Dur("elapsed", time.Since(start)).
			Msg("tabla resumen cargada")
	})
	return uc.dataset, uc.err
}

// Options dominios de los dos selectores.
func (uc *DashboardUseCase) Options(ctx context.Context) (*dto.OptionsDTO, error) {
	ds, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OptionsDTO{
		Stores: Domain(ds, entity.FieldStore),
		Items:  Domain(ds, entity.FieldItem),
	}, nil
}

// View ejecuta, de forma síncrona y sin memoización, el ciclo completo para una
// interacción: resolver selección → filtrar → agregar → modelo de render.
// store/item vacíos toman el primer valor de cada dominio.
func (uc *DashboardUseCase) View(ctx context.Context, store, item string) (*dto.DashboardViewDTO, error) {
	ds, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}

	sel := ResolveSelection(ds, store, item)
	view := Filter(ds, sel)
	metrics := Aggregate(view)

	return buildViewDTO(ds, view, metrics), nil
}

// Status estado de la carga para GET /api/status. Espera a la carga si está en curso.
func (uc *DashboardUseCase) Status(ctx context.Context) *dto.DatasetStatusDTO {
	ds, err := uc.Load(ctx)
	st := &dto.DatasetStatusDTO{Source: uc.srcDesc}
	if err != nil {
		st.Error = err.Error()
		return st
	}
	loadedAt := uc.loadedAt
	st.Loaded = true
	st.Rows = ds.Len()
	st.Skipped = uc.skipped
	st.LoadedAt = &loadedAt
	return st
}

func buildViewDTO(ds *entity.Dataset, view entity.FilteredView, m entity.DerivedMetrics) *dto.DashboardViewDTO {
	points := make([]dto.ChartPointDTO, 0, view.Len())
	for i, r := range view.Records {
		points = append(points, dto.ChartPointDTO{
			Index:  i,
			Label:  r.Label,
			Pred10: r.Pred10,
			Pred50: r.Pred50,
			Pred90: r.Pred90,
			Actual: r.Actual,
		})
	}

	return &dto.DashboardViewDTO{
		Selection: dto.SelectionDTO{StoreID: view.Selection.StoreID, ItemID: view.Selection.ItemID},
		Stores:    Domain(ds, entity.FieldStore),
		Items:     Domain(ds, entity.FieldItem),
		Rows:      m.Rows,
		Chart:     dto.ChartDTO{Points: points},
		Metrics: dto.MetricsDTO{
			RMSE: metricDTO("RMSE", m.RMSE, ""),
			MAE:  metricDTO("MAE", m.MAE, ""),
			WAPE: metricDTO("WAPE", m.WAPE, "%"),
		},
		Alerts: dto.AlertsDTO{
			Overstock:  dto.CountDTO{Label: "Overstock Alerts", Count: m.Overstock},
			Understock: dto.CountDTO{Label: "Understock Alerts", Count: m.Understock},
		},
	}
}
