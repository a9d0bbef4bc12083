package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

// Mailer sends a single HTML message. It reports success instead of
// returning an error; callers treat delivery as best effort.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) bool
}

// GmailMailer sends through the Gmail API as the authorised account.
type GmailMailer struct {
	Client *gmail.Service
	From   string
	Log    zerolog.Logger

	attempts int
	backoff  time.Duration
}

func NewGmailMailer(client *gmail.Service, from string, log zerolog.Logger) *GmailMailer {
	return &GmailMailer{
		Client:   client,
		From:     from,
		Log:      log.With().Str("component", "mailer").Logger(),
		attempts: 3,
		backoff:  time.Second,
	}
}

func (m *GmailMailer) Send(ctx context.Context, to, subject, htmlBody string) bool {
	raw := base64.URLEncoding.EncodeToString(buildMessage(m.From, to, subject, htmlBody))
	msg := &gmail.Message{Raw: raw}

	err := retry(ctx, m.Log, m.attempts, m.backoff, func() error {
		_, err := m.Client.Users.Messages.Send("me", msg).Context(ctx).Do()
		return err
	})
	if err != nil {
		m.Log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Email not sent")
		return false
	}
	m.Log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return true
}

// LogMailer only logs outgoing mail. Used when Gmail is not configured.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) Send(_ context.Context, to, subject, _ string) bool {
	m.Log.Info().Str("to", to).Str("subject", subject).Msg("Email delivery disabled; message dropped")
	return true
}

// buildMessage renders a minimal RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// retry runs f with exponential backoff. Client errors other than rate
// limiting are not retried.
func retry(ctx context.Context, log zerolog.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if permanent(err) {
			return err
		}

		log.Warn().Err(err).Dur("backoff", sleep).Int("attempt", i+1).Msg("API error, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func permanent(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code >= 400 && gErr.Code < 500 && gErr.Code != http.StatusTooManyRequests
}
