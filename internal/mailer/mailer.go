// Package mailer provides the outbound email transport for broadcast dispatch.
package mailer

import (
	"context"
	"io"

	"gopkg.in/gomail.v2"
)

// Attachment is an in-memory file attached to an outbound message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Outbound is a single fully-composed message for one recipient.
type Outbound struct {
	To          string
	Subject     string
	HTMLContent string
	Attachments []Attachment
}

// Sender delivers a single outbound message. Implementations do not confirm
// per-recipient delivery synchronously; a nil error means the transport
// accepted the message.
type Sender interface {
	Send(ctx context.Context, msg Outbound) error
}

// SMTPConfig configures the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender returns a Sender backed by an SMTP server via gomail.
func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Outbound) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLContent)

	for _, att := range msg.Attachments {
		content := att.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.Attach(att.Filename, settings...)
	}

	return s.dialer.DialAndSend(m)
}
