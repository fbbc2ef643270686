package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Dataset.Source)
	assert.Equal(t, "LPD_2024_public.csv", cfg.Dataset.Path)
	assert.Equal(t, "Latitude", cfg.Dataset.LatColumn)
	assert.Equal(t, "Longitude", cfg.Dataset.LonColumn)
	assert.Equal(t, "ID", cfg.Dataset.IDColumn)
	assert.Equal(t, "Common_name", cfg.Dataset.NameCol)
	assert.Equal(t, 5, cfg.Engine.DefaultK)
	assert.Equal(t, 20000, cfg.Engine.ParallelThreshold)
	assert.Positive(t, cfg.Engine.Workers)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
	assert.Equal(t, "*", cfg.Server.AllowOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.NearestCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LDP_2024_public", "/data/animals.csv")
	t.Setenv("LAT_COL", "lat")
	t.Setenv("LON_COL", "lng")
	t.Setenv("NAME_COL", "species")
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("NEAREST_CACHE_TTL", "60")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "/data/animals.csv", cfg.Dataset.Path)
	assert.Equal(t, "lat", cfg.Dataset.LatColumn)
	assert.Equal(t, "lng", cfg.Dataset.LonColumn)
	assert.Equal(t, "species", cfg.Dataset.NameCol)
	assert.Equal(t, "ID", cfg.Dataset.IDColumn)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.NearestCacheTTL)
}

func TestLoadFile_DatasetPathTakesPrecedence(t *testing.T) {
	t.Setenv("DATASET_PATH", "primary.csv")
	t.Setenv("LDP_2024_public", "legacy.csv")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "primary.csv", cfg.Dataset.Path)
}

func TestLoadFile_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATASET_SOURCE=postgres\nDATASET_TABLE=wildlife.animals\nDB_HOST=db\nLOG_LEVEL=debug\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Dataset.Source)
	assert.Equal(t, "wildlife.animals", cfg.Dataset.Table)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "host=db port=5432 user= password= dbname= sslmode=disable", cfg.Database.DSN())
}

func TestLoadFile_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown source":       {"DATASET_SOURCE": "ftp"},
		"postgres needs table": {"DATASET_SOURCE": "postgres"},
		"non-positive k":       {"DEFAULT_K": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			assert.Error(t, err)
		})
	}
}
