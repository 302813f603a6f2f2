package server

import (
	"bunchly/internal/models"
	"bunchly/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// TrackEvent records one page view. Geo fields are resolved server-side from
// the client IP; the client only supplies what the browser knows.
func (s *Server) TrackEvent(c *fiber.Ctx) error {
	var req struct {
		Path      string `json:"path"`
		VisitorID string `json:"visitorId"`
		Device    string `json:"device"`
		OS        string `json:"os"`
		Browser   string `json:"browser"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ip := c.IP()
	country, city := s.geoResolver.Lookup(ip)

	event := &models.AnalyticsEvent{
		Path:      req.Path,
		VisitorID: req.VisitorID,
		IP:        ip,
		Country:   country,
		City:      city,
		Device:    req.Device,
		OS:        req.OS,
		Browser:   req.Browser,
	}

	if err := s.analyticsService.Track(c.Context(), event); err != nil {
		return respondServiceError(c, err)
	}

	observability.TrackedEvents.Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
	})
}
