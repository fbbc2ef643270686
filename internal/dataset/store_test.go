package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearest-service/internal/dataset"
	"github.com/nearest-service/internal/domain"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/nearest-service/internal/repository/file"
)

type staticSource struct {
	table *domain.Table
	err   error
}

func (s *staticSource) Read(ctx context.Context) (*domain.Table, error) { return s.table, s.err }
func (s *staticSource) Describe() string                                { return "static" }

func TestBuild_ParsesColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"ID", "Common_name", "Latitude", "Longitude", "Extra"},
		Rows: [][]string{
			{"1", "Koala", "-27.47", "153.02", "x"},
			{"", "", "not-a-number", "149.13"},
			{"3", "Echidna", " 12.5 ", ""},
			{"4"},
			{"5", "Quokka", "NaN", "Inf"},
		},
	}

	ds, stats, err := dataset.Build(table, dataset.DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 5, ds.Len())
	assert.Len(t, ds.Latitudes(), 5)
	assert.Len(t, ds.Longitudes(), 5)
	assert.Equal(t, 4, stats.MissingCoordinates)

	r0 := ds.Record(0)
	assert.Equal(t, "1", *r0.ID)
	assert.Equal(t, "Koala", *r0.Name)
	assert.Equal(t, -27.47, *r0.Latitude)
	assert.Equal(t, 153.02, *r0.Longitude)

	r1 := ds.Record(1)
	assert.Nil(t, r1.ID)
	assert.Nil(t, r1.Name)
	assert.Nil(t, r1.Latitude)
	assert.Equal(t, 149.13, *r1.Longitude)

	assert.Equal(t, 12.5, *ds.Record(2).Latitude)
	assert.Nil(t, ds.Record(2).Longitude)
	assert.Nil(t, ds.Record(3).Name)
	assert.Nil(t, ds.Record(4).Latitude)
	assert.Nil(t, ds.Record(4).Longitude)
}

func TestBuild_OptionalColumnsAbsent(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"lat", "lng"},
		Rows:    [][]string{{"1", "2"}},
	}

	ds, _, err := dataset.Build(table, dataset.Columns{Latitude: "lat", Longitude: "lng", ID: "ID", Name: ""})
	require.NoError(t, err)
	assert.Nil(t, ds.Record(0).ID)
	assert.Nil(t, ds.Record(0).Name)
	assert.Equal(t, 1.0, *ds.Record(0).Latitude)
}

func TestBuild_MissingRequiredColumn(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"ID", "Common_name", "Latitude"},
	}

	_, _, err := dataset.Build(table, dataset.DefaultColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSchema))
	assert.Contains(t, err.Error(), "'Longitude'")
	assert.Contains(t, err.Error(), "['ID', 'Common_name', 'Latitude']")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Longitude", appErr.Details["column"])
	assert.Equal(t, []string{"ID", "Common_name", "Latitude"}, appErr.Details["available"])
}

func TestLoader_LoadResult(t *testing.T) {
	logger := zap.NewNop()

	t.Run("csv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "animals.csv")
		require.NoError(t, os.WriteFile(path, []byte("ID,Common_name,Latitude,Longitude\n1,Koala,-27.47,153.02\n"), 0o644))

		result := dataset.NewLoader(file.NewSource(path, ""), dataset.DefaultColumns(), logger).LoadResult(context.Background())
		ds, err := result.Dataset()
		require.NoError(t, err)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.csv")

		result := dataset.NewLoader(file.NewSource(path, ""), dataset.DefaultColumns(), logger).LoadResult(context.Background())
		ds, err := result.Dataset()
		assert.Nil(t, ds)
		assert.True(t, errors.Is(err, apperrors.ErrSourceNotFound))
	})

	t.Run("missing longitude column", func(t *testing.T) {
		src := &staticSource{table: &domain.Table{Columns: []string{"ID", "Latitude"}}}

		result := dataset.NewLoader(src, dataset.DefaultColumns(), logger).LoadResult(context.Background())
		assert.True(t, errors.Is(result.Err(), apperrors.ErrSchema))
		assert.Contains(t, result.Err().Error(), "Longitude")
	})

	t.Run("source error is kept", func(t *testing.T) {
		readErr := errors.New("connection refused")
		src := &staticSource{err: readErr}

		result := dataset.NewLoader(src, dataset.DefaultColumns(), logger).LoadResult(context.Background())
		assert.ErrorIs(t, result.Err(), readErr)
	})
}
