package service

import (
	"context"
	"strings"

	"bunchly/internal/models"
	"bunchly/internal/repository"
)

var feedbackTypes = map[string]struct{}{
	models.FeedbackTypeGeneral: {},
	models.FeedbackTypeBug:     {},
	models.FeedbackTypeFeature: {},
}

// FeedbackInput is the payload for submitting feedback.
type FeedbackInput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FeedbackService records feedback from authenticated users.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// Create validates and records a feedback entry.
func (s *FeedbackService) Create(ctx context.Context, userID uint, in FeedbackInput) (*models.Feedback, error) {
	if _, ok := feedbackTypes[in.Type]; !ok {
		return nil, models.NewValidationError("type must be one of general, bug, feature")
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, models.NewValidationError("message is required")
	}

	feedback := &models.Feedback{
		UserID:  userID,
		Type:    in.Type,
		Message: message,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// List returns a page of feedback entries (admin view).
func (s *FeedbackService) List(ctx context.Context, limit, offset int) ([]models.Feedback, int64, error) {
	return s.feedbackRepo.List(ctx, limit, offset)
}
