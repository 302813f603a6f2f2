package server

import (
	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback records feedback from an authenticated user.
func (s *Server) CreateFeedback(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req service.FeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, err := s.feedbackService.Create(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Feedback received",
		"feedback": feedback,
	})
}

// GetFeedback lists feedback entries for the admin dashboard.
func (s *Server) GetFeedback(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	entries, total, err := s.feedbackService.List(c.Context(), limit, (page-1)*limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"feedback": entries,
		"pagination": fiber.Map{
			"page":  page,
			"total": total,
		},
	})
}
