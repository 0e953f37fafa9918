// Package kernel provides the shared domain primitives of the fulfillment model.
//
// The package includes:
//   - UUID: the identifier value object used by orders and order details
//   - CancellationWindow: the time span during which a customer may cancel unilaterally
//
// Primitives are immutable and safe for concurrent use.
package kernel
