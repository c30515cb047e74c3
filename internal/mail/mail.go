package mail

import (
	"context"
	"log/slog"
)

// Sender delivers account verification links. Message composition and
// transport are external concerns; the API only depends on this contract.
type Sender interface {
	SendVerificationLink(ctx context.Context, to, link string) error
}

// LogSender writes the link to the structured log instead of sending mail.
// Useful for local and dev environments without an SMTP relay.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) SendVerificationLink(ctx context.Context, to, link string) error {
	l := s.Log
	if l == nil {
		l = slog.Default()
	}
	l.Info("verification mail", "to", to, "link", link)
	return nil
}
