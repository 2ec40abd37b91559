package handler

import (
	"errors"

	"label-desk/internal/core/logger"
	"label-desk/internal/features/rates/domain"
	"label-desk/internal/features/rates/ports"
	"label-desk/internal/features/rates/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateHandler handles HTTP requests for rate quotes.
type RateHandler struct {
	service ports.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(service ports.RateService) *RateHandler {
	return &RateHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
	// Errors holds the per-provider failures when no provider quoted.
	Errors map[string]domain.ProviderError `json:"errors,omitempty"`
}

// GetRates godoc
// @Summary Quote a shipment
// @Description Quotes every configured provider for standard and signature-required delivery and returns the reconciled carrier table
// @Tags rates
// @Accept json
// @Produce json
// @Param request body domain.RateRequest true "Shipment to quote"
// @Success 200 {object} domain.RateResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /rates [post]
func (h *RateHandler) GetRates(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req domain.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	result, err := h.service.GetRates(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParcel), errors.Is(err, service.ErrInvalidDestination):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		case errors.Is(err, domain.ErrNoRates):
			resp := ErrorResponse{Message: err.Error(), RayID: rayID}
			if result != nil {
				resp.Errors = result.Errors
			}
			logger.Get().Warn("No provider returned rates", zap.String("ray_id", rayID), zap.Int("failed", len(resp.Errors)))
			return c.Status(fiber.StatusBadGateway).JSON(resp)
		}

		logger.Get().Error("Failed to get rates", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
			RayID:   rayID,
		})
	}

	return c.JSON(result)
}
