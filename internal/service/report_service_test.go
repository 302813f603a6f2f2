package service

import (
	"context"
	"testing"

	"bunchly/internal/models"
	"bunchly/internal/repository"
)

type reportRepoStub struct {
	create       func(ctx context.Context, report *models.Report) error
	list         func(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error)
	updateStatus func(ctx context.Context, id uint, status string) (*models.Report, error)
}

var _ repository.ReportRepository = (*reportRepoStub)(nil)

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	if s.create == nil {
		return nil
	}
	return s.create(ctx, report)
}

func (s *reportRepoStub) List(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	if s.list == nil {
		return nil, 0, nil
	}
	return s.list(ctx, status, limit, offset)
}

func (s *reportRepoStub) UpdateStatus(ctx context.Context, id uint, status string) (*models.Report, error) {
	if s.updateStatus == nil {
		return nil, models.NewNotFoundError("Report", id)
	}
	return s.updateStatus(ctx, id, status)
}

func TestReportCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := NewReportService(&reportRepoStub{})

	cases := []struct {
		name  string
		input ReportInput
	}{
		{"missing username", ReportInput{Reason: models.ReportReasonSpam}},
		{"unknown reason", ReportInput{Username: "alice", Reason: "bad-vibes"}},
		{"malformed email", ReportInput{Username: "alice", Reason: models.ReportReasonSpam, ReporterEmail: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestReportCreate_OpensReport(t *testing.T) {
	t.Parallel()

	var stored *models.Report
	repo := &reportRepoStub{
		create: func(_ context.Context, report *models.Report) error {
			stored = report
			return nil
		},
	}
	svc := NewReportService(repo)

	report, err := svc.Create(context.Background(), ReportInput{
		Username: " Alice ",
		Reason:   models.ReportReasonImpersonation,
		Details:  " fake account ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored == nil {
		t.Fatal("expected report to be persisted")
	}
	if report.Username != "alice" {
		t.Errorf("expected normalized username, got %q", report.Username)
	}
	if report.Status != models.ReportStatusOpen {
		t.Errorf("new reports must be open, got %q", report.Status)
	}
	if report.Details != "fake account" {
		t.Errorf("expected trimmed details, got %q", report.Details)
	}
	// Reporter email stays optional.
	if report.ReporterEmail != "" {
		t.Errorf("expected empty reporter email, got %q", report.ReporterEmail)
	}
}

func TestReportList_StatusFilterValidated(t *testing.T) {
	t.Parallel()

	svc := NewReportService(&reportRepoStub{})

	if _, _, err := svc.List(context.Background(), "archived", 10, 0); err == nil {
		t.Fatal("expected unknown status filter to be rejected")
	}
	if _, _, err := svc.List(context.Background(), models.ReportStatusOpen, 10, 0); err != nil {
		t.Fatalf("open filter must be accepted: %v", err)
	}
	if _, _, err := svc.List(context.Background(), "", 10, 0); err != nil {
		t.Fatalf("empty filter must be accepted: %v", err)
	}
}

func TestReportLifecycle(t *testing.T) {
	t.Parallel()

	var lastStatus string
	repo := &reportRepoStub{
		updateStatus: func(_ context.Context, id uint, status string) (*models.Report, error) {
			lastStatus = status
			return &models.Report{ID: id, Status: status}, nil
		},
	}
	svc := NewReportService(repo)

	report, err := svc.Resolve(context.Background(), 4)
	if err != nil || report.Status != models.ReportStatusResolved {
		t.Fatalf("expected resolved report, got %+v, %v", report, err)
	}

	if _, err := svc.Dismiss(context.Background(), 4); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if lastStatus != models.ReportStatusDismissed {
		t.Fatalf("expected dismissed status, got %q", lastStatus)
	}
}
