package server

import (
	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPublicProfile resolves a username to its public profile page. The three
// outcomes carry distinct statuses: 200 with data, 404 when unknown, and 403
// with isBanned when suspended.
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	result := s.profileService.Resolve(c.Context(), username)
	switch result.State {
	case service.ProfileFound:
		return c.JSON(fiber.Map{
			"success": true,
			"user":    result.User,
			"links":   result.Links,
		})
	case service.ProfileSuspended:
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewSuspensionError("This profile"))
	default:
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Profile", username))
	}
}
