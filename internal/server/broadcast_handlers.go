package server

import (
	"io"

	"bunchly/internal/mailer"
	"bunchly/internal/models"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendBroadcast composes and dispatches an email to a selected audience. The
// request is multipart form data so attachments can ride along. A non-empty
// testEmail field selects test mode: only that address receives the message.
func (s *Server) SendBroadcast(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	if !s.flags.Enabled("broadcast_dispatch", userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAuthorizationError("Broadcast dispatch is currently disabled"))
	}

	input := service.BroadcastInput{
		Subject:           c.FormValue("subject"),
		HTMLContent:       c.FormValue("content"),
		Audience:          c.FormValue("audience", service.AudienceAll),
		SpecificRecipient: c.FormValue("specificEmail"),
		TestRecipient:     c.FormValue("testEmail"),
		Mode:              service.ModeBroadcast,
	}
	if input.TestRecipient != "" {
		input.Mode = service.ModeTest
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fileHeader := range form.File["attachments"] {
			file, err := fileHeader.Open()
			if err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Could not read attachment "+fileHeader.Filename))
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Could not read attachment "+fileHeader.Filename))
			}
			input.Attachments = append(input.Attachments, mailer.Attachment{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}

	result, err := s.broadcastService.Send(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"message":            result.Message,
		"recipients":         result.Recipients,
		"skippedAttachments": result.SkippedAttachments,
	})
}
