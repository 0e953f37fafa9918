// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Validation errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a value is outside its bounds
//
// Workflow errors:
//   - ObjectNotFoundError: an order or detail does not exist or is not visible to the caller
//   - UnauthorizedError: the caller does not own the resource
//   - WindowExpiredError: the customer cancellation window has closed
//   - AlreadyInTerminalStateError: the requested transition is not allowed from the current state
//   - ConcurrencyConflictError: a version-guarded write lost a race
//   - TransientInfraError: a collaborator (notification transport) failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
