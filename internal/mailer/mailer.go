package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
)

// Job is a single outgoing email.
type Job struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single email job.
type Sender interface {
	Send(ctx context.Context, job Job) error
}

// MailgunSender delivers email through the Mailgun API.
type MailgunSender struct {
	mg   mailgun.Mailgun
	from string
}

// NewMailgunSender creates a Sender backed by Mailgun.
func NewMailgunSender(domain, apiKey, from string) *MailgunSender {
	return &MailgunSender{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

// Send delivers the job through Mailgun.
func (s *MailgunSender) Send(ctx context.Context, job Job) error {
	m := s.mg.NewMessage(s.from, job.Subject, job.Body, job.To)
	_, _, err := s.mg.Send(ctx, m)
	return err
}

// NoopSender discards all jobs. Used when Mailgun is not configured.
type NoopSender struct{}

// Send discards the job.
func (NoopSender) Send(_ context.Context, _ Job) error {
	return nil
}
