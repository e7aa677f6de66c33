package domain

import "time"

// ContactRole marks a contact as customer, supplier or both.
type ContactRole string

const (
	ContactRoleCustomer ContactRole = "customer"
	ContactRoleSupplier ContactRole = "supplier"
	ContactRoleBoth     ContactRole = "both"
)

// Contact represents a counterparty known to the ledger. A contact may carry
// a default account; when present it overrides automatic classification.
type Contact struct {
	ID               string
	Name             string
	Role             ContactRole
	DefaultAccountID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasDefaultAccount reports whether the contact carries a default account.
func (c *Contact) HasDefaultAccount() bool {
	return c.DefaultAccountID != nil && *c.DefaultAccountID != ""
}
