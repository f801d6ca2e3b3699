package notify

import (
	"context"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/pkg/logger"
)

var _ access.Notifier = (*LogSender)(nil)

// LogSender writes notifications to the log instead of delivering them. Used
// in development when no SMTP host is configured.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender builds the log-only sender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the notification and reports success.
func (s *LogSender) Send(_ context.Context, kind, recipient string, params map[string]string) error {
	ev := s.log.Info().Str("kind", kind).Str("recipient", recipient)
	for k, v := range params {
		if k == "token" || k == "message" {
			continue
		}
		ev = ev.Str(k, v)
	}
	ev.Msg("notification (log only)")
	return nil
}
