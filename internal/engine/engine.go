// Package engine - поиск k ближайших записей в датасете в памяти: полный проход
// по всем записям и частичный отбор без сортировки всего прохода
package engine

import (
	"math"
	"runtime"
	"slices"

	"github.com/nearest-service/internal/domain"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/nearest-service/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold - размер датасета, начиная с которого проход
// делится между воркерами
const DefaultParallelThreshold = 20000

type Options struct {
	// Workers - максимум горутин на один проход. 0 - GOMAXPROCS
	Workers int
	// ParallelThreshold - минимальный размер датасета для параллельного прохода.
	// 0 - DefaultParallelThreshold
	ParallelThreshold int
}

// Engine не хранит состояния кроме настроек, один экземпляр обслуживает конкурентные запросы
type Engine struct {
	workers   int
	threshold int
}

func New(opts Options) *Engine {
	e := &Engine{
		workers:   opts.Workers,
		threshold: opts.ParallelThreshold,
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.threshold <= 0 {
		e.threshold = DefaultParallelThreshold
	}
	return e
}

// Distances - расстояние haversine в км от (lat, lon) до каждой записи ds
// в порядке строк. Для записей без координат - NaN
func (e *Engine) Distances(ds *domain.Dataset, lat, lon float64) []float64 {
	n := ds.Len()
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	lats, lons := ds.Latitudes(), ds.Longitudes()
	if n < e.threshold || e.workers == 1 {
		scan(out, lats, lons, lat, lon, 0, n)
		return out
	}

	chunk := (n + e.workers - 1) / e.workers
	var g errgroup.Group
	g.SetLimit(e.workers)
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			scan(out, lats, lons, lat, lon, start, end)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func scan(out, lats, lons []float64, lat, lon float64, start, end int) {
	for i := start; i < end; i++ {
		out[i] = utils.HaversineDistance(lat, lon, lats[i], lons[i])
	}
}

// Nearest возвращает не более k ближайших к (lat, lon) записей по возрастанию
// расстояния. При равных расстояниях сохраняется порядок строк. Записи без
// координат в выдачу не попадают
func (e *Engine) Nearest(ds *domain.Dataset, lat, lon float64, k int) ([]domain.Neighbor, error) {
	if k <= 0 {
		return nil, apperrors.ErrInvalidArgument.
			WithMessage("k must be positive").
			WithDetails(map[string]interface{}{"k": k})
	}

	dists := e.Distances(ds, lat, lon)

	candidates := make([]int, 0, len(dists))
	for i, d := range dists {
		if !math.IsNaN(d) {
			candidates = append(candidates, i)
		}
	}

	kEff := min(k, len(candidates))
	if kEff == 0 {
		return []domain.Neighbor{}, nil
	}

	less := func(a, b int) bool {
		if dists[a] != dists[b] {
			return dists[a] < dists[b]
		}
		return a < b
	}

	if kEff < len(candidates) {
		selectSmallest(candidates, kEff, less)
	}
	top := candidates[:kEff]
	slices.SortFunc(top, func(a, b int) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})

	result := make([]domain.Neighbor, kEff)
	for i, idx := range top {
		result[i] = domain.Neighbor{
			Index:      idx,
			Record:     ds.Record(idx),
			DistanceKm: dists[idx],
		}
	}
	return result, nil
}
