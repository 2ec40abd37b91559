package handler

import (
	"errors"

	"label-desk/internal/core/httpclient"
	"label-desk/internal/core/logger"
	"label-desk/internal/features/labels/domain"
	"label-desk/internal/features/labels/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LabelHandler handles HTTP requests for label purchases.
type LabelHandler struct {
	service ports.PurchaseService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(service ports.PurchaseService) *LabelHandler {
	return &LabelHandler{
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

// Purchase godoc
// @Summary Buy a shipping label
// @Description Buys the label of a quote, stores the file on Google Drive and records it in the history log. A warning is returned when the label was bought but a follow-up step failed.
// @Tags labels
// @Accept json
// @Produce json
// @Param request body domain.PurchaseRequest true "Quote to buy"
// @Success 200 {object} domain.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /purchase [post]
func (h *LabelHandler) Purchase(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req domain.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	result, err := h.service.Purchase(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingQuote), errors.Is(err, domain.ErrProviderNotSupported):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		case errors.Is(err, domain.ErrPurchaseFailed):
			logger.Get().Warn("Provider refused purchase", zap.String("ray_id", rayID), zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		}

		logger.Get().Error("Label purchase failed", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: httpclient.MessageFor(err, "label purchase failed"),
			RayID:   rayID,
		})
	}

	if result.Warning != "" {
		logger.Get().Warn("Label purchased with warning",
			zap.String("ray_id", rayID),
			zap.String("tracking_number", result.TrackingNumber),
			zap.String("warning", result.Warning),
		)
	}

	return c.JSON(result)
}
