package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bunchly/internal/models"
	"bunchly/internal/repository"
	"bunchly/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newReportTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	s := &Server{
		db:            db,
		reportService: service.NewReportService(repository.NewReportRepository(db)),
	}
	app := fiber.New()
	app.Post("/api/reports", s.CreateReport)
	app.Get("/api/admin/reports", s.GetReports)
	app.Post("/api/admin/reports/:id/resolve", s.ResolveReport)
	app.Post("/api/admin/reports/:id/dismiss", s.DismissReport)
	return app
}

func TestReportLifecycle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	app := newReportTestApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/reports",
		bytes.NewBufferString(`{"username":"Spammer","reason":"spam","details":"fake giveaways"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		Report models.Report `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if created.Report.Status != models.ReportStatusOpen {
		t.Errorf("expected open status, got %q", created.Report.Status)
	}
	if created.Report.Username != "spammer" {
		t.Errorf("expected normalized username, got %q", created.Report.Username)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/admin/reports/%d/resolve", created.Report.ID), nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve failed with %d", resp.StatusCode)
	}

	var closed struct {
		Report models.Report `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&closed); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if closed.Report.Status != models.ReportStatusResolved {
		t.Errorf("expected resolved status, got %q", closed.Report.Status)
	}
}

func TestGetReports_StatusFilter(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	app := newReportTestApp(t, db)

	db.Create(&models.Report{Username: "a", Reason: models.ReportReasonSpam, Status: models.ReportStatusOpen})
	db.Create(&models.Report{Username: "b", Reason: models.ReportReasonOther, Status: models.ReportStatusDismissed})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/reports?status=open", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Reports    []models.Report `json:"reports"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Pagination.Total != 1 || len(body.Reports) != 1 {
		t.Fatalf("expected 1 open report, got total=%d len=%d", body.Pagination.Total, len(body.Reports))
	}
	if body.Reports[0].Username != "a" {
		t.Errorf("expected report for a, got %q", body.Reports[0].Username)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/reports?status=archived", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestCreateReport_UnknownReason(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	app := newReportTestApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/reports",
		bytes.NewBufferString(`{"username":"x","reason":"vibes"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFeedbackHandlers(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	s := &Server{
		db:              db,
		feedbackService: service.NewFeedbackService(repository.NewFeedbackRepository(db)),
	}
	app := fiber.New()
	app.Post("/api/feedback", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return s.CreateFeedback(c)
	})
	app.Get("/api/admin/feedback", s.GetFeedback)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback",
		bytes.NewBufferString(`{"type":"bug","message":"  reorder drops a link  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Feedback []models.Feedback `json:"feedback"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Feedback) != 1 {
		t.Fatalf("expected 1 feedback entry, got %d", len(body.Feedback))
	}
	if body.Feedback[0].Message != "reorder drops a link" {
		t.Errorf("expected trimmed message, got %q", body.Feedback[0].Message)
	}

	// The author is not exposed over the wire; check the row directly.
	var stored models.Feedback
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load feedback row: %v", err)
	}
	if stored.UserID != 7 {
		t.Errorf("expected feedback attributed to user 7, got %d", stored.UserID)
	}
}
