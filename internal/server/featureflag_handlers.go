package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns configured flags plus their evaluation for the
// requesting admin, so staged rollouts can be inspected.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	return c.JSON(fiber.Map{
		"success":   true,
		"flags":     s.flags.Raw(),
		"evaluated": s.flags.Snapshot(userID),
	})
}
