package usecase

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	"github.com/nearest-service/internal/engine"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/nearest-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// NearestUseCase - поиск ближайших записей в датасете, загруженном при старте
type NearestUseCase struct {
	load      domain.LoadResult
	engine    *engine.Engine
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
	defaultK  int
}

// NewNearestUseCase - создание нового NearestUseCase
func NewNearestUseCase(
	load domain.LoadResult,
	eng *engine.Engine,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	defaultK int,
) *NearestUseCase {
	return &NearestUseCase{
		load:      load,
		engine:    eng,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		defaultK:  defaultK,
	}
}

// Nearest возвращает k ближайших записей к точке запроса
func (uc *NearestUseCase) Nearest(ctx context.Context, req dto.NearestRequest) (*dto.NearestResponse, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, apperrors.ErrInvalidRequest.WithMessage("lat and lon are required")
	}
	lat, lon := *req.Lat, *req.Lon
	// NaN и Inf дают NaN-расстояние до каждой записи, такой запрос не имеет ответа
	if !isFinite(lat) || !isFinite(lon) {
		return nil, apperrors.ErrInvalidRequest.
			WithMessage("lat and lon must be finite numbers").
			WithDetails(map[string]interface{}{
				"lat": strconv.FormatFloat(lat, 'g', -1, 64),
				"lon": strconv.FormatFloat(lon, 'g', -1, 64),
			})
	}

	k := uc.defaultK
	if req.K != nil {
		k = *req.K
	}
	// k проверяется до состояния датасета: k <= 0 всегда ошибка клиента
	if k <= 0 {
		return nil, apperrors.ErrInvalidArgument.
			WithMessage("k must be positive").
			WithDetails(map[string]interface{}{"k": k})
	}

	ds, err := uc.load.Dataset()
	if err != nil {
		return nil, datasetUnavailable(err)
	}

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetNearest(ctx, ds.Fingerprint(), lat, lon, k)
	if err != nil {
		uc.logger.Warn("Failed to get nearest from cache", zap.Error(err))
	}
	if cached != nil {
		uc.logger.Debug("Nearest fetched from cache",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Int("k", k),
		)
		return dto.NewNearestResponse(cached), nil
	}

	// 2. Полный проход по датасету
	start := time.Now()
	neighbors, err := uc.engine.Nearest(ds, lat, lon, k)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("Nearest computed",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("k", k),
		zap.Int("results", len(neighbors)),
		zap.Duration("took", time.Since(start)),
	)

	// 3. Кешируем; ошибка кеша не влияет на ответ
	if err := uc.cacheRepo.SetNearest(ctx, ds.Fingerprint(), lat, lon, k, neighbors, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache nearest", zap.Error(err))
	}

	return dto.NewNearestResponse(neighbors), nil
}

// Health возвращает состояние датасета
func (uc *NearestUseCase) Health() dto.HealthResponse {
	ds, err := uc.load.Dataset()
	if err != nil {
		return dto.HealthResponse{
			Status: dto.HealthStatusError,
			Detail: err.Error(),
		}
	}
	rows := ds.Len()
	return dto.HealthResponse{
		Status: dto.HealthStatusOK,
		Rows:   &rows,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func datasetUnavailable(loadErr error) *apperrors.AppError {
	return apperrors.ErrDatasetUnavailable.
		WithMessage("Startup error: %s", loadErr.Error()).
		Wrap(loadErr)
}
