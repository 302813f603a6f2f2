package server

import (
	"context"

	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport files a visitor report against a profile. The endpoint is
// public and rate limited; reporter email is optional.
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req service.ReportInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Report submitted",
		"report":  report,
	})
}

// GetReports lists reports for the admin queue, optionally filtered by status.
func (s *Server) GetReports(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	reports, total, err := s.reportService.List(c.Context(), c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reports": reports,
		"pagination": fiber.Map{
			"page":  page,
			"total": total,
		},
	})
}

// ResolveReport marks a report as resolved.
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	return s.closeReport(c, s.reportService.Resolve, "Report resolved")
}

// DismissReport marks a report as dismissed.
func (s *Server) DismissReport(c *fiber.Ctx) error {
	return s.closeReport(c, s.reportService.Dismiss, "Report dismissed")
}

func (s *Server) closeReport(c *fiber.Ctx, transition func(ctx context.Context, id uint) (*models.Report, error), message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	report, err := transition(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"report":  report,
	})
}
