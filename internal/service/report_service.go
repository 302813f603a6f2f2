package service

import (
	"context"
	"strings"

	"bunchly/internal/models"
	"bunchly/internal/repository"
	"bunchly/internal/validation"
)

var reportReasons = map[string]struct{}{
	models.ReportReasonSpam:          {},
	models.ReportReasonInappropriate: {},
	models.ReportReasonHarassment:    {},
	models.ReportReasonImpersonation: {},
	models.ReportReasonOther:         {},
}

// ReportInput is a visitor-submitted report payload.
type ReportInput struct {
	Username      string `json:"username"`
	Reason        string `json:"reason"`
	Details       string `json:"details"`
	ReporterEmail string `json:"reporterEmail"`
}

// ReportService implements the report intake and moderation lifecycle.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService returns a new ReportService.
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Create validates and records a report. The reason enum is a closed set and
// never trusted from client labels alone.
func (s *ReportService) Create(ctx context.Context, in ReportInput) (*models.Report, error) {
	username := validation.NormalizeUsername(in.Username)
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	if _, ok := reportReasons[in.Reason]; !ok {
		return nil, models.NewValidationError("reason must be one of spam, inappropriate, harassment, impersonation, other")
	}
	email := strings.TrimSpace(in.ReporterEmail)
	if email != "" && !strings.Contains(email, "@") {
		return nil, models.NewValidationError("reporterEmail must be a valid email address")
	}

	report := &models.Report{
		Username:      username,
		Reason:        in.Reason,
		Details:       strings.TrimSpace(in.Details),
		ReporterEmail: email,
		Status:        models.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns a page of reports, optionally filtered by status.
func (s *ReportService) List(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	if status != "" {
		switch status {
		case models.ReportStatusOpen, models.ReportStatusResolved, models.ReportStatusDismissed:
		default:
			return nil, 0, models.NewValidationError("status must be one of open, resolved, dismissed")
		}
	}
	return s.reportRepo.List(ctx, status, limit, offset)
}

// Resolve marks a report as handled.
func (s *ReportService) Resolve(ctx context.Context, id uint) (*models.Report, error) {
	return s.reportRepo.UpdateStatus(ctx, id, models.ReportStatusResolved)
}

// Dismiss closes a report without action.
func (s *ReportService) Dismiss(ctx context.Context, id uint) (*models.Report, error) {
	return s.reportRepo.UpdateStatus(ctx, id, models.ReportStatusDismissed)
}
