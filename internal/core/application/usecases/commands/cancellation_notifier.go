package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancellationNotifier turns committed cancellations into notifications. A delivery
// failure is logged and never reaches the command's caller.
type CancellationNotifier struct {
	sink   ports.NotificationSink
	logger *slog.Logger
}

func NewCancellationNotifier(sink ports.NotificationSink, logger *slog.Logger) CancellationNotifier {
	return CancellationNotifier{
		sink:   sink,
		logger: logger.With("component", "cancellation_notifier"),
	}
}

// Notify sends one message per recipient covering all of that recipient's cancelled items.
func (n CancellationNotifier) Notify(ctx context.Context, events []order.DetailCancelled) {
	if n.sink == nil || len(events) == 0 {
		return
	}

	recipients := make([]string, 0)
	byRecipient := make(map[string][]order.DetailCancelled)
	for _, e := range events {
		r := e.Recipient()
		if r == "" {
			continue
		}
		if _, seen := byRecipient[r]; !seen {
			recipients = append(recipients, r)
		}
		byRecipient[r] = append(byRecipient[r], e)
	}

	for _, r := range recipients {
		subject, body := renderCancellation(byRecipient[r])
		if err := n.sink.SendNotification(ctx, r, subject, body); err != nil {
			n.logger.WarnContext(ctx, "Notification not delivered",
				"recipient", r,
				"items", len(byRecipient[r]),
				"error", err,
			)
		}
	}
}

func renderCancellation(events []order.DetailCancelled) (string, string) {
	subject := "An item of your order was cancelled"
	if len(events) > 1 {
		subject = fmt.Sprintf("%d items of your orders were cancelled", len(events))
	}

	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "%s (order %s) was cancelled by %s", e.ProductName, e.OrderID, strings.ToLower(e.Role.String()))
		if e.Reason != "" {
			fmt.Fprintf(&b, ": %s", e.Reason)
		}
		b.WriteString(".\n")
	}
	return subject, b.String()
}
