// Package dataset - построение колоночного датасета в памяти из табличного источника
package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// Columns - имена колонок источника. Latitude и Longitude обязательны,
// ID и Name необязательны и могут быть пустыми
type Columns struct {
	Latitude  string
	Longitude string
	ID        string
	Name      string
}

func DefaultColumns() Columns {
	return Columns{
		Latitude:  "Latitude",
		Longitude: "Longitude",
		ID:        "ID",
		Name:      "Common_name",
	}
}

// Loader - однократная загрузка датасета из источника
type Loader struct {
	source  repository.TableSource
	columns Columns
	logger  *zap.Logger
}

func NewLoader(source repository.TableSource, columns Columns, logger *zap.Logger) *Loader {
	return &Loader{
		source:  source,
		columns: columns,
		logger:  logger,
	}
}

// Load читает источник и строит датасет
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	l.logger.Info("Loading dataset", zap.String("source", l.source.Describe()))

	table, err := l.source.Read(ctx)
	if err != nil {
		return nil, err
	}

	ds, stats, err := Build(table, l.columns)
	if err != nil {
		return nil, err
	}

	if stats.MissingCoordinates > 0 {
		l.logger.Warn("Records with missing coordinates will not be ranked",
			zap.Int("count", stats.MissingCoordinates),
		)
	}
	l.logger.Info("Dataset loaded",
		zap.String("source", l.source.Describe()),
		zap.Int("rows", ds.Len()),
		zap.String("fingerprint", ds.Fingerprint()),
		zap.Strings("columns", table.Columns),
	)

	return ds, nil
}

// LoadResult выполняет Load и фиксирует итог. Ошибка логируется здесь один раз
// и сохраняется для повторной выдачи
func (l *Loader) LoadResult(ctx context.Context) domain.LoadResult {
	ds, err := l.Load(ctx)
	if err != nil {
		l.logger.Error("Dataset load failed, queries will be rejected until restart",
			zap.String("source", l.source.Describe()),
			zap.Error(err),
		)
		return domain.LoadFailed(err)
	}
	return domain.Loaded(ds)
}

type BuildStats struct {
	MissingCoordinates int
}

// Build превращает таблицу в датасет. Без обязательной колонки - errors.ErrSchema
func Build(table *domain.Table, cols Columns) (*domain.Dataset, BuildStats, error) {
	var stats BuildStats

	index := make(map[string]int, len(table.Columns))
	for i, name := range table.Columns {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	latIdx, err := requireColumn(index, table.Columns, cols.Latitude)
	if err != nil {
		return nil, stats, err
	}
	lonIdx, err := requireColumn(index, table.Columns, cols.Longitude)
	if err != nil {
		return nil, stats, err
	}
	idIdx := optionalColumn(index, cols.ID)
	nameIdx := optionalColumn(index, cols.Name)

	records := make([]domain.Record, len(table.Rows))
	for i, row := range table.Rows {
		r := domain.Record{
			ID:        textCell(row, idIdx),
			Name:      textCell(row, nameIdx),
			Latitude:  floatCell(row, latIdx),
			Longitude: floatCell(row, lonIdx),
		}
		if !r.HasCoordinates() {
			stats.MissingCoordinates++
		}
		records[i] = r
	}

	return domain.NewDataset(records), stats, nil
}

func requireColumn(index map[string]int, available []string, name string) (int, error) {
	if i, ok := index[name]; ok {
		return i, nil
	}
	return -1, apperrors.ErrSchema.
		WithMessage("Column '%s' not found in dataset. Available: %s", name, formatColumns(available)).
		WithDetails(map[string]interface{}{
			"column":    name,
			"available": available,
		})
}

func optionalColumn(index map[string]int, name string) int {
	if name == "" {
		return -1
	}
	if i, ok := index[name]; ok {
		return i
	}
	return -1
}

func formatColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("'%s'", c)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func cell(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return "", false
	}
	return v, true
}

func textCell(row []string, idx int) *string {
	v, ok := cell(row, idx)
	if !ok {
		return nil
	}
	return &v
}

func floatCell(row []string, idx int) *float64 {
	v, ok := cell(row, idx)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
