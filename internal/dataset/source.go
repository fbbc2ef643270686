package dataset

import (
	"fmt"

	"github.com/nearest-service/internal/config"
	"github.com/nearest-service/internal/domain/repository"
	"github.com/nearest-service/internal/repository/file"
	"github.com/nearest-service/internal/repository/objectstore"
	"github.com/nearest-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// OpenSource - источник таблицы по cfg.Dataset.Source. Возвращаемая release
// освобождает соединения источника, её нужно вызвать после загрузки датасета
func OpenSource(cfg *config.Config, logger *zap.Logger) (repository.TableSource, func(), error) {
	noop := func() {}

	switch cfg.Dataset.Source {
	case config.SourceFile:
		return file.NewSource(cfg.Dataset.Path, cfg.Dataset.Sheet), noop, nil

	case config.SourceS3:
		bucket, key, err := objectstore.ParseLocation(cfg.Dataset.Path)
		if err != nil {
			return nil, noop, err
		}
		client, err := objectstore.NewClient(&cfg.S3, logger)
		if err != nil {
			return nil, noop, err
		}
		return objectstore.NewObjectSource(client, bucket, key, cfg.Dataset.Sheet), noop, nil

	case config.SourcePostgres:
		db, err := postgres.New(&cfg.Database, logger)
		if err != nil {
			return nil, noop, err
		}
		release := func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}
		return postgres.NewTableSource(db, cfg.Dataset.Table), release, nil
	}

	return nil, noop, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
}

// ColumnsFromConfig - имена колонок из конфига
func ColumnsFromConfig(cfg *config.DatasetConfig) Columns {
	return Columns{
		Latitude:  cfg.LatColumn,
		Longitude: cfg.LonColumn,
		ID:        cfg.IDColumn,
		Name:      cfg.NameCol,
	}
}
