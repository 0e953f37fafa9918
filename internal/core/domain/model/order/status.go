package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a single order detail. It replaces the
// IsProcessed/IsCancelled/IsReturned flag triple, so combinations such as
// "processed and cancelled" cannot be represented.
//
// State transitions:
//
//	            Process                Return
//	Pending ─────────────> Processed ─────────> Returned
//	   ^  <─────────────       ^                   │
//	   │      Unprocess        └──── Process ──────┤
//	   │                                           │
//	   ├──────────────── Unprocess ────────────────┘
//	   │
//	   └── Cancel ──> Cancelled
//
// Cancelled and Returned are left only through Reset (order reactivation) and,
// for Returned, through the seller processing or reopening the item again.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the seller has not acted yet.
	Pending

	// Processed means the seller marked the item as done.
	Processed

	// Cancelled means the item was withdrawn by a customer, seller, admin or the system.
	Cancelled

	// Returned means the customer sent a processed item back.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Processed: "Processed",
		Cancelled: "Cancelled",
		Returned:  "Returned",
	}
}

// Validate checks that the status is one of Pending, Processed, Cancelled, Returned.
func (s Status) Validate() error {
	if s < Pending || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus converts the persisted name back to a Status.
func ParseStatus(value string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// Process transitions Pending or Returned to Processed.
func (s Status) Process() (Status, error) {
	if s != Pending && s != Returned {
		return 0, s.rejected("process")
	}
	return Processed, nil
}

// Unprocess reopens a Processed or Returned item as Pending.
func (s Status) Unprocess() (Status, error) {
	if s != Processed && s != Returned {
		return 0, s.rejected("reopen")
	}
	return Pending, nil
}

// Cancel transitions Pending to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, s.rejected("cancel")
	}
	return Cancelled, nil
}

// Return transitions Processed to Returned.
func (s Status) Return() (Status, error) {
	if s != Processed {
		return 0, s.rejected("return")
	}
	return Returned, nil
}

// Reset brings any valid status back to Pending. Used by order reactivation.
func (s Status) Reset() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return Pending, nil
}

func (s Status) rejected(action string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return errs.NewAlreadyInTerminalStateError("order detail", s.String(), action)
}
