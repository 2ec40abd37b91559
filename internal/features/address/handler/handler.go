package handler

import (
	"errors"

	"label-desk/internal/core/httpclient"
	"label-desk/internal/core/logger"
	"label-desk/internal/features/address/domain"
	"label-desk/internal/features/address/parser"
	"label-desk/internal/features/address/ports"
	"label-desk/internal/features/address/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AddressHandler handles HTTP requests for address parsing and validation.
type AddressHandler struct {
	service ports.ValidationService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service ports.ValidationService) *AddressHandler {
	return &AddressHandler{
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

// ParseRequest is the body of POST /address/parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Address  domain.Address `json:"address"`
	Provider string         `json:"provider"`
}

// Parse godoc
// @Summary Parse a pasted address
// @Description Extracts name, street, city, state and ZIP from a multi-line block or a comma/tab separated line
// @Tags address
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Pasted address text"
// @Success 200 {object} domain.Address
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /address/parse [post]
func (h *AddressHandler) Parse(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	addr, err := parser.Parse(req.Text)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: "could not recognise an address, please check the format or fill the fields manually",
			RayID:   rayID,
		})
	}

	return c.JSON(addr)
}

// Validate godoc
// @Summary Validate an address
// @Description Runs local format checks and asks a provider (shippo, easypost, shipengine or auto) for a verdict and suggestion
// @Tags address
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Address to validate"
// @Success 200 {object} domain.ValidationResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /validate [post]
func (h *AddressHandler) Validate(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID,
		})
	}

	result, err := h.service.Validate(c.UserContext(), req.Address, req.Provider)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownProvider), errors.Is(err, service.ErrNoValidator):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID,
			})
		}

		logger.Get().Error("Address validation failed", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: httpclient.MessageFor(err, "address validation failed"),
			RayID:   rayID,
		})
	}

	return c.JSON(result)
}
