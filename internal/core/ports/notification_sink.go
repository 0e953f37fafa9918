package ports

import "context"

// NotificationSink delivers a cancellation or decline notice to a recipient.
// Implementations may fail; callers log the error and never roll back on it.
type NotificationSink interface {
	SendNotification(ctx context.Context, recipient, subject, body string) error
}
