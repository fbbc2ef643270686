package repository

import (
	"context"
	"time"

	"github.com/nearest-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу. Промах кеша - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetNearest получает результат поиска ближайших записей из кеша.
	// dataset - отпечаток датасета (domain.Dataset.Fingerprint), по которому считался результат
	GetNearest(ctx context.Context, dataset string, lat, lon float64, k int) ([]domain.Neighbor, error)

	// SetNearest сохраняет результат поиска ближайших записей в кеше
	SetNearest(ctx context.Context, dataset string, lat, lon float64, k int, neighbors []domain.Neighbor, ttl time.Duration) error
}
