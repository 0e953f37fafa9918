package errs_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: order 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: orderId 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("reason")

		assert.Equal(t, "reason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: reason", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, "value is out of range: quantity is 150, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("orderID")

	assert.Equal(t, "value is required: orderID", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("orderID", errors.New("empty"))
	assert.Equal(t, "value is required: orderID (cause: empty)", withCause.Error())
}

func TestWorkflowErrors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		err := errs.NewUnauthorizedError("seller-2", "cancel order detail")

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, "caller is not authorized: seller-2 may not cancel order detail", err.Error())
	})

	t.Run("window expired", func(t *testing.T) {
		deadline := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		err := errs.NewWindowExpiredError("o-1", deadline)

		require.ErrorIs(t, err, errs.ErrWindowExpired)
		assert.Contains(t, err.Error(), "2024-05-02T10:00:00Z")
	})

	t.Run("already in terminal state", func(t *testing.T) {
		err := errs.NewAlreadyInTerminalStateError("order", "Shipped", "cancel")

		require.ErrorIs(t, err, errs.ErrAlreadyInTerminalState)
		assert.Equal(t, "already in terminal state: cannot cancel order in state Shipped", err.Error())
	})

	t.Run("concurrency conflict", func(t *testing.T) {
		err := errs.NewConcurrencyConflictError("order", "o-1", 3)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		assert.Contains(t, err.Error(), "version 3")
	})

	t.Run("transient infra matches sentinel and cause", func(t *testing.T) {
		cause := errors.New("broker unavailable")
		err := errs.NewTransientInfraError("send notification", cause)

		require.ErrorIs(t, err, errs.ErrTransientInfra)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "transient infrastructure failure: send notification (cause: broker unavailable)", err.Error())
	})
}

func TestErrorsCanBeMatchedWithAs(t *testing.T) {
	var wrapped error = errs.NewObjectNotFoundError("detail", "d-1")

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "detail", notFound.ParamName)
}
