// Package order holds the fulfillment model: the Order aggregate root and its
// OrderDetail line items.
//
// The package includes:
//   - Order: owns its details and keeps IsCancelled, Shipped and GrandTotal derived from them
//   - OrderDetail: one seller's line item with a frozen product snapshot
//   - Status: the per-item state machine (Pending, Processed, Cancelled, Returned)
//   - Role and Caller: who performed a transition
//   - DetailCancelled: the event handlers turn into notifications
//
// Key business rules:
//   - an order is cancelled when every one of its details is cancelled
//   - an order is shipped when it has live details and all of them are processed
//   - cancelled items never count toward GrandTotal
//   - only Pending items can be cancelled and only Processed items can be returned
//
// Detail mutators are unexported; callers go through Order so the aggregate is
// recomputed after every change.
package order
