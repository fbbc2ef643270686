package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/nearest-service/internal/pkg/utils"
	"github.com/nearest-service/internal/pkg/validator"
	"github.com/nearest-service/internal/usecase"
	"github.com/nearest-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// NearestHandler - обработчик запросов поиска ближайших записей
type NearestHandler struct {
	nearestUC *usecase.NearestUseCase
	logger    *zap.Logger
}

// NewNearestHandler - создание нового NearestHandler
func NewNearestHandler(nearestUC *usecase.NearestUseCase, logger *zap.Logger) *NearestHandler {
	return &NearestHandler{
		nearestUC: nearestUC,
		logger:    logger,
	}
}

// Nearest godoc
// @Summary Find nearest records
// @Description Возвращает k ближайших записей датасета к точке, по возрастанию расстояния (км, haversine)
// @Tags Nearest
// @Accept json
// @Produce json
// @Param request body dto.NearestRequest true "Точка запроса и k (по умолчанию 5)"
// @Success 200 {object} dto.NearestResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /nearest [post]
func (h *NearestHandler) Nearest(c *fiber.Ctx) error {
	var req dto.NearestRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid request body: %s", err.Error()))
	}

	return h.nearest(c, req)
}

// NearestGET godoc
// @Summary Find nearest records (query string)
// @Description То же, что POST /nearest, параметры в query string
// @Tags Nearest
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param k query int false "Number of records" default(5)
// @Success 200 {object} dto.NearestResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /nearest [get]
func (h *NearestHandler) NearestGET(c *fiber.Ctx) error {
	var req dto.NearestRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid query parameters: %s", err.Error()))
	}

	return h.nearest(c, req)
}

func (h *NearestHandler) nearest(c *fiber.Ctx, req dto.NearestRequest) error {
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearestUC.Nearest(c.UserContext(), req)
	if err != nil {
		h.logger.Debug("Nearest request rejected", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, result)
}

// Health godoc
// @Summary Health check
// @Description Состояние датасета: число строк или ошибка загрузки при старте
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *NearestHandler) Health(c *fiber.Ctx) error {
	health := h.nearestUC.Health()
	if !health.OK() {
		return utils.SendJSON(c, fiber.StatusServiceUnavailable, health)
	}
	return utils.SendJSON(c, fiber.StatusOK, health)
}
