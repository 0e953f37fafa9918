package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role identifies which kind of actor performed a transition. It is stamped on
// cancelled details as CancelledByRole.
type Role int

const (
	// NoRole is the zero value, used for details that are not cancelled.
	NoRole Role = iota
	RoleCustomer
	RoleSeller
	RoleSystem
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer: "Customer",
		RoleSeller:   "Seller",
		RoleSystem:   "System",
		RoleAdmin:    "Admin",
	}
}

// String returns the persisted name of the role, or "" for NoRole.
func (r Role) String() string {
	return getRoleStrings()[r]
}

// ParseRole accepts role names case-insensitively. An empty string yields NoRole.
func ParseRole(value string) (Role, error) {
	if strings.TrimSpace(value) == "" {
		return NoRole, nil
	}
	for role, name := range getRoleStrings() {
		if strings.EqualFold(name, strings.TrimSpace(value)) {
			return role, nil
		}
	}
	return NoRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", value))
}

// Caller is the identity supplied by the authentication layer. Ids are opaque and
// compared as strings against Order.CustomerID and OrderDetail.ProductOwner.
type Caller struct {
	id   string
	role Role
}

// NewCaller validates the caller id. The role is informational except for RoleAdmin,
// which enables administrative overrides.
func NewCaller(id string, role Role) (Caller, error) {
	if strings.TrimSpace(id) == "" {
		return Caller{}, errs.NewValueIsRequiredError("caller id")
	}
	return Caller{id: id, role: role}, nil
}

// SystemCaller is the identity used by background processes.
func SystemCaller() Caller {
	return Caller{id: "system", role: RoleSystem}
}

func (c Caller) ID() string {
	return c.id
}

func (c Caller) Role() Role {
	return c.role
}

// IsAdmin reports whether the caller may override ownership checks.
func (c Caller) IsAdmin() bool {
	return c.role == RoleAdmin
}

// Validate rejects the zero value.
func (c Caller) Validate() error {
	if c.id == "" {
		return errs.NewValueIsRequiredError("caller id")
	}
	return nil
}
