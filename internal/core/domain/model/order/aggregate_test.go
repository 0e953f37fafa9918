package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeAggregate(t *testing.T) {
	t.Run("no details", func(t *testing.T) {
		agg := order.ComputeAggregate(nil)

		assert.False(t, agg.IsCancelled)
		assert.False(t, agg.Shippable)
		assert.True(t, agg.GrandTotal.IsZero())
	})

	t.Run("mixed statuses", func(t *testing.T) {
		d1 := newDetail(t, "seller-1", "2.50", 4)
		d2 := newDetail(t, "seller-2", "100", 1)
		d3 := newDetail(t, "seller-3", "1", 1)
		o := newOrder(t, d1, d2, d3)
		_ = o.SetDetailProcessed(d1.ID(), true, t0)
		_ = o.CancelDetail(d2.ID(), order.RoleSeller, "", t0)

		agg := order.ComputeAggregate(o.Details())
		assert.False(t, agg.IsCancelled)
		assert.False(t, agg.Shippable)
		assert.True(t, decimal.RequireFromString("11").Equal(agg.GrandTotal))

		_ = o.SetDetailProcessed(d3.ID(), true, t0)
		agg = order.ComputeAggregate(o.Details())
		assert.True(t, agg.Shippable)
	})
}
