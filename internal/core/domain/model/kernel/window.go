package kernel

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// DefaultCancellationWindow is the period after OrderDate during which a customer
// may cancel an order or one of its items.
const DefaultCancellationWindow = 24 * time.Hour

// CancellationWindow is a positive duration measured from an order's OrderDate.
type CancellationWindow struct {
	length time.Duration
}

// NewCancellationWindow validates and wraps the window length.
func NewCancellationWindow(length time.Duration) (CancellationWindow, error) {
	if length <= 0 {
		return CancellationWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"cancellation window",
			fmt.Errorf("%s is not greater than 0", length),
		)
	}
	return CancellationWindow{length: length}, nil
}

// Length returns the window duration, falling back to the default for the zero value.
func (w CancellationWindow) Length() time.Duration {
	if w.length <= 0 {
		return DefaultCancellationWindow
	}
	return w.length
}

// Deadline returns the last instant at which the window is still open.
func (w CancellationWindow) Deadline(opened time.Time) time.Time {
	return opened.Add(w.Length())
}

// IsOpen reports whether now is not later than opened + length.
func (w CancellationWindow) IsOpen(opened, now time.Time) bool {
	return !now.After(w.Deadline(opened))
}
