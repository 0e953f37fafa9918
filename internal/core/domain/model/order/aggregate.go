package order

import "github.com/shopspring/decimal"

// Aggregate holds the Order-level values that are fully derived from its details.
type Aggregate struct {
	// IsCancelled is true when the order has details and every one of them is Cancelled.
	IsCancelled bool
	// Shippable is true when at least one detail is live and every live detail is Processed.
	Shippable bool
	// GrandTotal is the sum of Price*Quantity over live (non-cancelled) details.
	GrandTotal decimal.Decimal
}

// ComputeAggregate derives the aggregate flags from a set of details. It is the only
// place these rules live; every mutation of an Order calls it before returning.
func ComputeAggregate(details []*OrderDetail) Aggregate {
	agg := Aggregate{GrandTotal: decimal.Zero}

	live := 0
	allLiveProcessed := true
	for _, d := range details {
		if d.IsCancelled() {
			continue
		}
		live++
		agg.GrandTotal = agg.GrandTotal.Add(d.Subtotal())
		if !d.IsProcessed() {
			allLiveProcessed = false
		}
	}

	agg.IsCancelled = len(details) > 0 && live == 0
	agg.Shippable = live > 0 && allLiveProcessed
	return agg
}
