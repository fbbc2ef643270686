package cache

import (
	"context"
	"time"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
)

type noopRepository struct{}

// NewNoopRepository returns a cache that stores nothing. Used when REDIS_ENABLED=false.
func NewNoopRepository() repository.CacheRepository {
	return noopRepository{}
}

func (noopRepository) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (noopRepository) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopRepository) GetNearest(context.Context, string, float64, float64, int) ([]domain.Neighbor, error) {
	return nil, nil
}

func (noopRepository) SetNearest(context.Context, string, float64, float64, int, []domain.Neighbor, time.Duration) error {
	return nil
}
