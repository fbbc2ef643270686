package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// NearestKey builds the cache key of a nearest query. Coordinates are written
// with the shortest exact representation, so distinct points never share a key.
func NearestKey(dataset string, lat, lon float64, k int) string {
	return fmt.Sprintf("nearest:%s:%s:%s:%d",
		dataset,
		strconv.FormatFloat(lat, 'g', -1, 64),
		strconv.FormatFloat(lon, 'g', -1, 64),
		k,
	)
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, apperrors.ErrCacheError.WithMessage("cache get error: %s", err.Error()).Wrap(err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return apperrors.ErrCacheError.WithMessage("cache set error: %s", err.Error()).Wrap(err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) GetNearest(ctx context.Context, dataset string, lat, lon float64, k int) ([]domain.Neighbor, error) {
	data, err := r.Get(ctx, NearestKey(dataset, lat, lon, k))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var neighbors []domain.Neighbor
	if err := json.Unmarshal(data, &neighbors); err != nil {
		r.logger.Error("Failed to unmarshal neighbors from cache", zap.Error(err))
		return nil, apperrors.ErrCacheError.WithMessage("unmarshal neighbors: %s", err.Error()).Wrap(err)
	}

	return neighbors, nil
}

func (r *cacheRepository) SetNearest(ctx context.Context, dataset string, lat, lon float64, k int, neighbors []domain.Neighbor, ttl time.Duration) error {
	data, err := json.Marshal(neighbors)
	if err != nil {
		r.logger.Error("Failed to marshal neighbors", zap.Error(err))
		return apperrors.ErrCacheError.WithMessage("marshal neighbors: %s", err.Error()).Wrap(err)
	}

	return r.Set(ctx, NearestKey(dataset, lat, lon, k), data, ttl)
}
