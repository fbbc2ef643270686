package repository

import (
	"context"

	"github.com/nearest-service/internal/domain"
)

// TableSource определяет источник табличных данных для датасета
type TableSource interface {
	// Read читает таблицу целиком. Если источник не найден, возвращает errors.ErrSourceNotFound
	Read(ctx context.Context) (*domain.Table, error)

	// Describe возвращает человекочитаемое описание источника для логов
	Describe() string
}
