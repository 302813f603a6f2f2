package server

import (
	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSettings returns the global settings singleton. This is public: the
// frontend reads the sale banner without authentication.
func (s *Server) GetSettings(c *fiber.Ctx) error {
	settings, err := s.settingsService.Get(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settings,
	})
}

// UpdateSettings merges a partial update into the settings singleton. Fields
// absent from the body are retained; out-of-range values are rejected whole.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req service.SettingsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	settings, err := s.settingsService.Update(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Settings saved",
		"settings": settings,
	})
}
