package handler

import (
	"errors"

	"label-desk/internal/core/logger"
	"label-desk/internal/features/history/domain"
	"label-desk/internal/features/history/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HistoryHandler handles HTTP requests for the label history log.
type HistoryHandler struct {
	service ports.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(service ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListResponse is the body of GET /history.
type ListResponse struct {
	Data  []domain.Record `json:"data"`
	Count int             `json:"count"`
}

// List godoc
// @Summary List purchased labels
// @Description Returns the label history, newest first
// @Tags history
// @Produce json
// @Param from_date query string false "Lower created_at bound (e.g. 2026-01-01)"
// @Param to_date query string false "Upper created_at bound"
// @Success 200 {object} ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	filter := domain.Filter{
		FromDate: c.Query("from_date"),
		ToDate:   c.Query("to_date"),
	}

	records, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		logger.Get().Error("Failed to list history", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "could not load label history",
			RayID:   rayID,
		})
	}

	return c.JSON(ListResponse{Data: records, Count: len(records)})
}

// Add godoc
// @Summary Record a purchased label
// @Description Appends a purchased label to the history log
// @Tags history
// @Accept json
// @Produce json
// @Param record body domain.Record true "Purchased label"
// @Success 201 {object} domain.Record
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [post]
func (h *HistoryHandler) Add(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var record domain.Record
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	saved, err := h.service.Add(c.UserContext(), record)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRecord) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		}
		logger.Get().Error("Failed to save history record", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "could not save label history",
			RayID:   rayID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}
