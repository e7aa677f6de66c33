package domain

import "time"

// AccountType classifies an account within the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Account represents a ledger account in the chart of accounts.
// System-protected accounts (bank, suspense, control accounts) can never be
// deleted or deactivated once created.
type Account struct {
	ID              string
	Code            string
	Name            string
	Type            AccountType
	Active          bool
	SystemProtected bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanDeactivate checks whether the account may be soft-deactivated.
func (a *Account) CanDeactivate() error {
	if a.SystemProtected {
		return ErrSystemAccountProtected
	}
	return nil
}

// Postable reports whether new journal lines may reference this account.
func (a *Account) Postable() bool {
	return a.Active
}

// ValidType reports whether the account type is one of the five known types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}
