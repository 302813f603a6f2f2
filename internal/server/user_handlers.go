package server

import (
	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's own record.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// UpdateMyProfile applies a partial update to the authenticated user's
// display fields and appearance. Omitted fields are retained.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req struct {
		Name       *string            `json:"name"`
		Bio        *string            `json:"bio"`
		Image      *string            `json:"image"`
		Appearance *models.Appearance `json:"appearance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:     userID,
		Name:       req.Name,
		Bio:        req.Bio,
		Image:      req.Image,
		Appearance: req.Appearance,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"user":    user,
	})
}

// GetAllUsers lists accounts for the admin dashboard.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	users, total, err := s.userService.ListUsers(c.Context(), limit, (page-1)*limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"pagination": fiber.Map{
			"page":  page,
			"total": total,
		},
	})
}

// BanUser suspends an account. Suspended profiles resolve to 403 publicly.
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setBanned(c, true, "User banned")
}

// UnbanUser lifts a suspension.
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setBanned(c, false, "User unbanned")
}

func (s *Server) setBanned(c *fiber.Ctx, banned bool, message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.SetBanned(c.Context(), id, banned)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"user":    user,
	})
}
