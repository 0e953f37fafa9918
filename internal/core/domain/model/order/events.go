package order

import "fulfillment/internal/core/domain/model/kernel"

// DetailCancelled is recorded on the Order whenever one of its details is cancelled.
// Handlers turn these into notifications after the transaction commits.
type DetailCancelled struct {
	OrderID     kernel.UUID
	DetailID    kernel.UUID
	ProductName string
	Customer    string
	Seller      string
	Role        Role
	Reason      string
}

// Recipient is the party that did not initiate the cancellation: the seller when the
// customer cancelled, the customer otherwise.
func (e DetailCancelled) Recipient() string {
	if e.Role == RoleCustomer {
		return e.Seller
	}
	return e.Customer
}
