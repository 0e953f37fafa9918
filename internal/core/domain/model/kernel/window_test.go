package kernel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationWindow(t *testing.T) {
	opened := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("default window is 24 hours", func(t *testing.T) {
		var w kernel.CancellationWindow

		assert.Equal(t, 24*time.Hour, w.Length())
		assert.Equal(t, opened.Add(24*time.Hour), w.Deadline(opened))
	})

	t.Run("open until the deadline inclusive", func(t *testing.T) {
		w, err := kernel.NewCancellationWindow(24 * time.Hour)
		require.NoError(t, err)

		assert.True(t, w.IsOpen(opened, opened.Add(time.Hour)))
		assert.True(t, w.IsOpen(opened, opened.Add(24*time.Hour)))
		assert.False(t, w.IsOpen(opened, opened.Add(24*time.Hour+time.Nanosecond)))
		assert.False(t, w.IsOpen(opened, opened.Add(25*time.Hour)))
	})

	t.Run("rejects non positive length", func(t *testing.T) {
		_, err := kernel.NewCancellationWindow(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
