package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bunchly/internal/mailer"
	"bunchly/internal/middleware"
	"bunchly/internal/models"
	"bunchly/internal/observability"
	"bunchly/internal/repository"
)

// Broadcast audiences. The set is closed; each variant has its own resolver.
const (
	AudienceAll      = "all"
	AudiencePro      = "pro"
	AudienceFree     = "free"
	AudienceSpecific = "specific"
)

// Broadcast modes.
const (
	ModeTest      = "test"
	ModeBroadcast = "broadcast"
)

// MaxAttachmentSize is the per-attachment limit. Oversized attachments are
// skipped individually; the rest of the message still goes out.
const MaxAttachmentSize = 5 * 1024 * 1024

// BroadcastInput is a composed message plus its audience selection.
type BroadcastInput struct {
	Subject           string
	HTMLContent       string
	Audience          string
	SpecificRecipient string
	TestRecipient     string
	Mode              string
	Attachments       []mailer.Attachment
}

// DispatchResult reports the outcome of a dispatch. The resolved recipient
// list itself is never exposed to the caller.
type DispatchResult struct {
	Recipients         int      `json:"recipients"`
	SkippedAttachments []string `json:"skippedAttachments,omitempty"`
	Message            string   `json:"message"`
}

// BroadcastService resolves audiences and dispatches email through the mail
// transport. Broadcast mode is irreversible: there is no undo or cancellation
// once dispatch begins.
type BroadcastService struct {
	userRepo  repository.UserRepository
	sender    mailer.Sender
	batchSize int
}

// NewBroadcastService returns a new BroadcastService.
func NewBroadcastService(userRepo repository.UserRepository, sender mailer.Sender, batchSize int) *BroadcastService {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &BroadcastService{userRepo: userRepo, sender: sender, batchSize: batchSize}
}

// audienceResolvers maps each audience variant to its plan filter. The
// specific variant is handled separately since it does not hit the store.
var audiencePlans = map[string]string{
	AudienceAll:  "",
	AudiencePro:  models.PlanPro,
	AudienceFree: models.PlanFree,
}

// resolveAudience returns the recipient set for the input, server-side only.
func (s *BroadcastService) resolveAudience(ctx context.Context, in BroadcastInput) ([]string, error) {
	if in.Audience == AudienceSpecific {
		return []string{in.SpecificRecipient}, nil
	}
	plan, ok := audiencePlans[in.Audience]
	if !ok {
		return nil, models.NewValidationError("audience must be one of all, pro, free, specific")
	}
	return s.userRepo.ListEmails(ctx, plan)
}

func (s *BroadcastService) validate(in BroadcastInput) error {
	if strings.TrimSpace(in.Subject) == "" {
		return models.NewValidationError("subject is required")
	}
	if strings.TrimSpace(in.HTMLContent) == "" {
		return models.NewValidationError("content is required")
	}
	switch in.Mode {
	case ModeTest:
		if strings.TrimSpace(in.TestRecipient) == "" {
			return models.NewValidationError("test mode requires a recipient address")
		}
	case ModeBroadcast:
	default:
		return models.NewValidationError("mode must be test or broadcast")
	}
	if in.Audience == AudienceSpecific && strings.TrimSpace(in.SpecificRecipient) == "" {
		return models.NewValidationError("specific audience requires a recipient address")
	}
	if _, ok := audiencePlans[in.Audience]; !ok && in.Audience != AudienceSpecific {
		return models.NewValidationError("audience must be one of all, pro, free, specific")
	}
	return nil
}

// Send validates, resolves the audience, and dispatches one message per
// recipient in batches. Test mode only ever reaches the single test address,
// regardless of the selected audience. Per-recipient send failures are
// counted, logged, and do not abort the remaining recipients.
func (s *BroadcastService) Send(ctx context.Context, in BroadcastInput) (*DispatchResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	// Filter attachments: oversized ones are skipped and reported, the rest
	// of the dispatch proceeds (skip-and-report, not all-or-nothing).
	var attachments []mailer.Attachment
	var skipped []string
	for _, att := range in.Attachments {
		if len(att.Content) > MaxAttachmentSize {
			skipped = append(skipped, att.Filename)
			continue
		}
		attachments = append(attachments, att)
	}

	var recipients []string
	if in.Mode == ModeTest {
		recipients = []string{in.TestRecipient}
	} else {
		resolved, err := s.resolveAudience(ctx, in)
		if err != nil {
			return nil, err
		}
		recipients = resolved
	}

	failures := 0
	for start := 0; start < len(recipients); start += s.batchSize {
		end := start + s.batchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		for _, to := range recipients[start:end] {
			err := s.sender.Send(ctx, mailer.Outbound{
				To:          to,
				Subject:     in.Subject,
				HTMLContent: in.HTMLContent,
				Attachments: attachments,
			})
			if err != nil {
				failures++
				observability.BroadcastFailures.Inc()
				middleware.Logger.WarnContext(ctx, "broadcast send failed",
					slog.String("error", err.Error()))
			}
		}
	}

	observability.BroadcastRecipients.WithLabelValues(in.Mode).Add(float64(len(recipients)))

	msg := fmt.Sprintf("Dispatched to %d recipient(s)", len(recipients))
	if failures > 0 {
		msg = fmt.Sprintf("%s, %d failed", msg, failures)
	}
	if len(skipped) > 0 {
		msg = fmt.Sprintf("%s; skipped oversized attachment(s): %s", msg, strings.Join(skipped, ", "))
	}

	return &DispatchResult{
		Recipients:         len(recipients),
		SkippedAttachments: skipped,
		Message:            msg,
	}, nil
}
