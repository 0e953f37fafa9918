package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the log. Used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "notification_log_sink")}
}

func (s *LogSink) SendNotification(ctx context.Context, recipient, subject, body string) error {
	s.logger.InfoContext(ctx, "Notification",
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}
