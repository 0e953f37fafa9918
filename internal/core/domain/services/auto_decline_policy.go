package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// AutoDeclineReason is recorded on items the system cancels.
const AutoDeclineReason = "seller did not act within 24 hours"

// AutoDeclinePolicy picks items the seller left Pending for longer than the
// staleness threshold.
type AutoDeclinePolicy struct {
	staleAfter time.Duration
}

// NewAutoDeclinePolicy uses the cancellation window length as the staleness threshold.
func NewAutoDeclinePolicy(window kernel.CancellationWindow) AutoDeclinePolicy {
	return AutoDeclinePolicy{staleAfter: window.Length()}
}

func (p AutoDeclinePolicy) StaleAfter() time.Duration {
	return p.staleAfter
}

// Cutoff is the instant before which an untouched Pending item counts as stale.
func (p AutoDeclinePolicy) Cutoff(now time.Time) time.Time {
	return now.Add(-p.staleAfter)
}

// StaleDetails returns the stale items of o.
func (p AutoDeclinePolicy) StaleDetails(o *order.Order, now time.Time) []*order.OrderDetail {
	var stale []*order.OrderDetail
	for _, d := range o.Details() {
		if d.IsStale(now, p.staleAfter) {
			stale = append(stale, d)
		}
	}
	return stale
}

// Decline cancels every stale item of o on the system's behalf and returns how many
// were cancelled.
func (p AutoDeclinePolicy) Decline(o *order.Order, now time.Time) (int, error) {
	declined := 0
	for _, d := range p.StaleDetails(o, now) {
		if err := o.CancelDetail(d.ID(), order.RoleSystem, AutoDeclineReason, now); err != nil {
			return declined, err
		}
		declined++
	}
	return declined, nil
}
