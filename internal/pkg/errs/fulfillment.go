package errs

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the fulfillment workflow.
var (
	ErrUnauthorized           = errors.New("caller is not authorized")
	ErrWindowExpired          = errors.New("cancellation window expired")
	ErrAlreadyInTerminalState = errors.New("already in terminal state")
	ErrConcurrencyConflict    = errors.New("concurrency conflict, reload and retry")
	ErrTransientInfra         = errors.New("transient infrastructure failure")
)

// UnauthorizedError is returned when the caller does not own the resource it acts on.
type UnauthorizedError struct {
	CallerID string
	Action   string
}

// NewUnauthorizedError creates an UnauthorizedError for the caller and attempted action.
func NewUnauthorizedError(callerID, action string) *UnauthorizedError {
	return &UnauthorizedError{
		CallerID: callerID,
		Action:   action,
	}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, sanitize(e.CallerID), e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// WindowExpiredError is returned when a customer acts after the cancellation window closed.
type WindowExpiredError struct {
	OrderID  string
	Deadline time.Time
}

// NewWindowExpiredError creates a WindowExpiredError for the order and its deadline.
func NewWindowExpiredError(orderID string, deadline time.Time) *WindowExpiredError {
	return &WindowExpiredError{
		OrderID:  orderID,
		Deadline: deadline,
	}
}

func (e *WindowExpiredError) Error() string {
	return fmt.Sprintf("%s: order %s could be cancelled until %s",
		ErrWindowExpired, e.OrderID, e.Deadline.UTC().Format(time.RFC3339))
}

func (e *WindowExpiredError) Unwrap() error {
	return ErrWindowExpired
}

// AlreadyInTerminalStateError is returned when a transition is requested from a state
// that does not allow it (cancelling a shipped order, reactivating an active one).
type AlreadyInTerminalStateError struct {
	Entity string
	State  string
	Action string
}

// NewAlreadyInTerminalStateError creates an AlreadyInTerminalStateError.
func NewAlreadyInTerminalStateError(entity, state, action string) *AlreadyInTerminalStateError {
	return &AlreadyInTerminalStateError{
		Entity: entity,
		State:  state,
		Action: action,
	}
}

func (e *AlreadyInTerminalStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in state %s", ErrAlreadyInTerminalState, e.Action, e.Entity, e.State)
}

func (e *AlreadyInTerminalStateError) Unwrap() error {
	return ErrAlreadyInTerminalState
}

// ConcurrencyConflictError is returned when a version-guarded write matched no row.
type ConcurrencyConflictError struct {
	Entity  string
	ID      string
	Version int
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the stale row.
func NewConcurrencyConflictError(entity, id string, version int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		Entity:  entity,
		ID:      id,
		Version: version,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s is no longer at version %d", ErrConcurrencyConflict, e.Entity, e.ID, e.Version)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// TransientInfraError wraps failures of collaborators that may succeed on a later attempt.
type TransientInfraError struct {
	Operation string
	Cause     error
}

// NewTransientInfraError creates a TransientInfraError for the failed operation.
func NewTransientInfraError(operation string, cause error) *TransientInfraError {
	return &TransientInfraError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *TransientInfraError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrTransientInfra, e.Operation), e.Cause)
}

// Unwrap exposes both the sentinel and the cause so callers can match either.
func (e *TransientInfraError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransientInfra}
	}
	return []error{ErrTransientInfra, e.Cause}
}
