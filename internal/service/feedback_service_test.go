package service

import (
	"context"
	"testing"

	"bunchly/internal/models"
	"bunchly/internal/repository"
)

type feedbackRepoStub struct {
	create func(ctx context.Context, feedback *models.Feedback) error
	list   func(ctx context.Context, limit, offset int) ([]models.Feedback, int64, error)
}

var _ repository.FeedbackRepository = (*feedbackRepoStub)(nil)

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.Feedback) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, feedback)
}

func (s *feedbackRepoStub) List(ctx context.Context, limit, offset int) ([]models.Feedback, int64, error) {
	if s.list == nil {
		return nil, 0, nil
	}
	return s.list(ctx, limit, offset)
}

func TestFeedbackCreate(t *testing.T) {
	t.Parallel()

	var stored *models.Feedback
	repo := &feedbackRepoStub{
		create: func(_ context.Context, feedback *models.Feedback) error {
			stored = feedback
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	if _, err := svc.Create(context.Background(), 1, FeedbackInput{Type: "rant", Message: "x"}); err == nil {
		t.Error("expected unknown type to be rejected")
	}
	if _, err := svc.Create(context.Background(), 1, FeedbackInput{Type: models.FeedbackTypeBug, Message: "   "}); err == nil {
		t.Error("expected blank message to be rejected")
	}

	feedback, err := svc.Create(context.Background(), 7, FeedbackInput{
		Type:    models.FeedbackTypeFeature,
		Message: " dark mode please ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored == nil || feedback.UserID != 7 {
		t.Fatalf("expected feedback stored for user 7, got %+v", feedback)
	}
	if feedback.Message != "dark mode please" {
		t.Errorf("expected trimmed message, got %q", feedback.Message)
	}
}
