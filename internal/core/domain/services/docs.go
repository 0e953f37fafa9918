// Package services holds fulfillment rules that need more than one aggregate's view
// of the world: who a caller is relative to an order, and which items the system may
// decline on its own.
//
// The package includes:
//   - CancellationPolicy: resolves the cancelling role for an item and applies the window
//   - AutoDeclinePolicy: selects items that sat Pending for too long
package services
