package dto

import "github.com/nearest-service/internal/domain"

// NearestResponse - ответ на поиск ближайших записей, по возрастанию distance_km
type NearestResponse struct {
	Results []NearestResult `json:"results"`
}

// NearestResult - запись датасета и расстояние до точки запроса
type NearestResult struct {
	ID         *string  `json:"id"`
	Name       *string  `json:"name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	DistanceKm float64  `json:"distance_km"`
}

// NewNearestResponse - ответ из отсортированных соседей
func NewNearestResponse(neighbors []domain.Neighbor) *NearestResponse {
	results := make([]NearestResult, len(neighbors))
	for i, n := range neighbors {
		results[i] = NearestResult{
			ID:         n.Record.ID,
			Name:       n.Record.Name,
			Latitude:   n.Record.Latitude,
			Longitude:  n.Record.Longitude,
			DistanceKm: n.DistanceKm,
		}
	}
	return &NearestResponse{Results: results}
}

const (
	HealthStatusOK    = "ok"
	HealthStatusError = "error"
)

// HealthResponse - состояние сервиса: число строк датасета или ошибка загрузки
type HealthResponse struct {
	Status string `json:"status"`
	Rows   *int   `json:"rows,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (h HealthResponse) OK() bool {
	return h.Status == HealthStatusOK
}
