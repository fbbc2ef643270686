package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearest-service/internal/config"
	"github.com/nearest-service/internal/dataset"
)

func TestOpenSource(t *testing.T) {
	logger := zap.NewNop()

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Dataset: config.DatasetConfig{Source: config.SourceFile, Path: "animals.xlsx", Sheet: "Data"}}
		src, release, err := dataset.OpenSource(cfg, logger)
		require.NoError(t, err)
		defer release()
		assert.Equal(t, "xlsx:animals.xlsx#Data", src.Describe())
	})

	t.Run("s3", func(t *testing.T) {
		cfg := &config.Config{
			Dataset: config.DatasetConfig{Source: config.SourceS3, Path: "s3://datasets/animals.csv"},
			S3:      config.S3Config{Endpoint: "localhost:9000", Region: "us-east-1"},
		}
		src, release, err := dataset.OpenSource(cfg, logger)
		require.NoError(t, err)
		defer release()
		assert.Equal(t, "s3://datasets/animals.csv", src.Describe())
	})

	t.Run("s3 bad location", func(t *testing.T) {
		cfg := &config.Config{Dataset: config.DatasetConfig{Source: config.SourceS3, Path: "animals.csv"}}
		_, _, err := dataset.OpenSource(cfg, logger)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Dataset: config.DatasetConfig{Source: "ftp"}}
		_, _, err := dataset.OpenSource(cfg, logger)
		assert.Error(t, err)
	})
}

func TestColumnsFromConfig(t *testing.T) {
	cols := dataset.ColumnsFromConfig(&config.DatasetConfig{LatColumn: "lat", LonColumn: "lon", IDColumn: "id", NameCol: "species"})
	assert.Equal(t, dataset.Columns{Latitude: "lat", Longitude: "lon", ID: "id", Name: "species"}, cols)
}
