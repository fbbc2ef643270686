package dto

// NearestRequest - запрос на поиск ближайших записей.
// Координаты не проверяются на диапазон: значения вне [-90, 90] и [-180, 180] дают просто большие расстояния
type NearestRequest struct {
	Lat *float64 `json:"lat" query:"lat" validate:"required" example:"-27.47"`
	Lon *float64 `json:"lon" query:"lon" validate:"required" example:"153.02"`
	K   *int     `json:"k,omitempty" query:"k" example:"5"`
}
