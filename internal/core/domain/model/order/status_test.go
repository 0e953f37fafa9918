package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Processed, order.Cancelled, order.Returned} {
		assert.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(42), order.Status(-1)} {
		err := s.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("Returned")
	require.NoError(t, err)
	assert.Equal(t, order.Returned, s)

	_, err = order.ParseStatus("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	process := order.Status.Process
	unprocess := order.Status.Unprocess
	cancel := order.Status.Cancel
	ret := order.Status.Return
	reset := order.Status.Reset

	tests := []struct {
		name string
		from order.Status
		do   transition
		want order.Status
		ok   bool
	}{
		{"process pending", order.Pending, process, order.Processed, true},
		{"process returned", order.Returned, process, order.Processed, true},
		{"process processed", order.Processed, process, 0, false},
		{"process cancelled", order.Cancelled, process, 0, false},
		{"unprocess processed", order.Processed, unprocess, order.Pending, true},
		{"unprocess returned", order.Returned, unprocess, order.Pending, true},
		{"unprocess cancelled", order.Cancelled, unprocess, 0, false},
		{"cancel pending", order.Pending, cancel, order.Cancelled, true},
		{"cancel processed", order.Processed, cancel, 0, false},
		{"cancel cancelled", order.Cancelled, cancel, 0, false},
		{"cancel returned", order.Returned, cancel, 0, false},
		{"return processed", order.Processed, ret, order.Returned, true},
		{"return pending", order.Pending, ret, 0, false},
		{"return returned", order.Returned, ret, 0, false},
		{"reset cancelled", order.Cancelled, reset, order.Pending, true},
		{"reset returned", order.Returned, reset, order.Pending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.do(tt.from)
			if !tt.ok {
				require.ErrorIs(t, err, errs.ErrAlreadyInTerminalState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown status is invalid rather than terminal", func(t *testing.T) {
		_, err := order.Unknown.Cancel()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.Unknown.Reset()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseRole(t *testing.T) {
	r, err := order.ParseRole("seller")
	require.NoError(t, err)
	assert.Equal(t, order.RoleSeller, r)

	r, err = order.ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, order.NoRole, r)
	assert.Empty(t, r.String())

	_, err = order.ParseRole("courier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
