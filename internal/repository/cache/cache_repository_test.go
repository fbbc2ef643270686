package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearest-service/internal/config"
	"github.com/nearest-service/internal/domain"
	apperrors "github.com/nearest-service/internal/pkg/errors"
)

func ptrString(v string) *string    { return &v }
func ptrFloat64(v float64) *float64 { return &v }

func newTestRepository(t *testing.T) (*miniredis.Miniredis, *cacheRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCacheRepository(NewRedisFromClient(client, zap.NewNop())).(*cacheRepository)
	return mr, repo
}

func TestNearestKey(t *testing.T) {
	assert.Equal(t, "nearest:ab12:-27.47:153.02:5", NearestKey("ab12", -27.47, 153.02, 5))

	// distinct points never share a key, however close they are
	assert.NotEqual(t, NearestKey("ds", 0, 0, 1), NearestKey("ds", 4e-7, 0, 1))
	assert.NotEqual(t, NearestKey("ds", 1.00000001, 2, 3), NearestKey("ds", 1, 2, 3))
	assert.NotEqual(t, NearestKey("ds", 1, 2, 3), NearestKey("ds", 1, 2, 4))

	// the same query against another dataset is another key
	assert.NotEqual(t, NearestKey("old", 1, 2, 3), NearestKey("new", 1, 2, 3))
}

func TestNoopRepository(t *testing.T) {
	repo := NewNoopRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetNearest(ctx, "ds", 1, 2, 3, []domain.Neighbor{{Index: 1}}, time.Minute))
	got, err := repo.GetNearest(ctx, "ds", 1, 2, 3)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_NearestRoundTrip(t *testing.T) {
	mr, repo := newTestRepository(t)
	ctx := context.Background()

	neighbors := []domain.Neighbor{
		{Index: 0, Record: domain.Record{ID: ptrString("1"), Name: ptrString("Koala"), Latitude: ptrFloat64(0), Longitude: ptrFloat64(0)}, DistanceKm: 0},
		{Index: 3, Record: domain.Record{ID: ptrString("4"), Latitude: ptrFloat64(0), Longitude: ptrFloat64(1)}, DistanceKm: 111.19492664455873},
	}

	got, err := repo.GetNearest(ctx, "ds", 0, 0, 2)
	require.NoError(t, err)
	assert.Nil(t, got, "miss before set")

	require.NoError(t, repo.SetNearest(ctx, "ds", 0, 0, 2, neighbors, time.Hour))

	got, err = repo.GetNearest(ctx, "ds", 0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, neighbors, got)
	assert.Nil(t, got[1].Record.Name)

	key := NearestKey("ds", 0, 0, 2)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	t.Run("nearby point misses", func(t *testing.T) {
		got, err := repo.GetNearest(ctx, "ds", 4e-7, 0, 2)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other dataset misses", func(t *testing.T) {
		got, err := repo.GetNearest(ctx, "other", 0, 0, 2)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		mr.FastForward(time.Hour + time.Second)
		got, err := repo.GetNearest(ctx, "ds", 0, 0, 2)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCacheRepository_CorruptEntry(t *testing.T) {
	mr, repo := newTestRepository(t)
	require.NoError(t, mr.Set(NearestKey("ds", 1, 2, 3), "not json"))

	_, err := repo.GetNearest(context.Background(), "ds", 1, 2, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCacheError))
}

func TestCacheRepository_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewCacheRepository(NewRedisFromClient(client, zap.NewNop()))
	ctx := context.Background()

	_, err := repo.GetNearest(ctx, "ds", 1, 2, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCacheError))

	err = repo.SetNearest(ctx, "ds", 1, 2, 3, nil, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCacheError))
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{Redis: config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}}
	assert.Equal(t, mr.Addr(), cfg.GetRedisAddr())

	r, err := NewRedis(cfg, zap.NewNop())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Client().Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	mr.Close()
	_, err = NewRedis(cfg, zap.NewNop())
	assert.Error(t, err)
}
