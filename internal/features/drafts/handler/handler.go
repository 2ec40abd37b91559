package handler

import (
	"errors"
	"net/http"

	"label-desk/internal/core/logger"
	"label-desk/internal/features/drafts/domain"
	"label-desk/internal/features/drafts/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DraftHandler handles HTTP requests for label form drafts.
type DraftHandler struct {
	service ports.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(service ports.DraftService) *DraftHandler {
	return &DraftHandler{
		service: service,
	}
}

// SaveDraft handles PUT /drafts/:id.
// @Summary Save a form draft
// @Description Replaces the saved label form state stored under the id.
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Param draft body domain.Draft true "Form state"
// @Success 200 {object} domain.Draft
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /drafts/{id} [put]
func (h *DraftHandler) SaveDraft(c *fiber.Ctx) error {
	var draft domain.Draft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	saved, err := h.service.SaveDraft(c.UserContext(), c.Params("id"), draft)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDraftID) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid draft id. Use up to 64 letters, digits, '-' or '_'",
			})
		}
		logger.Get().Error("Failed to save draft", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(saved)
}

// GetDraft handles GET /drafts/:id.
// @Summary Get a form draft
// @Description Retrieves the saved label form state.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} domain.Draft
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.service.GetDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "No saved draft",
			})
		}
		logger.Get().Error("Failed to get draft", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(draft)
}

// RemoveDraft handles DELETE /drafts/:id.
// @Summary Remove a form draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /drafts/{id} [delete]
func (h *DraftHandler) RemoveDraft(c *fiber.Ctx) error {
	if err := h.service.RemoveDraft(c.UserContext(), c.Params("id")); err != nil {
		logger.Get().Error("Failed to remove draft", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Draft removed successfully",
	})
}
