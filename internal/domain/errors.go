package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrDuplicateAccountCode   = errors.New("account code already exists")
	ErrSystemAccountProtected = errors.New("system account cannot be deleted or deactivated")

	// Contact errors
	ErrContactNotFound = errors.New("contact not found")

	// Journal errors
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")
	ErrEmptyEntry      = errors.New("journal entry has no lines")
	ErrEntryFinalized  = errors.New("journal entry is already final")
	ErrEntryNotFound   = errors.New("journal entry not found")
	ErrInvalidLine     = errors.New("journal line must carry either a debit or a credit, not both")
	ErrNegativeLine    = errors.New("journal line amounts must not be negative")

	// Bank transaction errors
	ErrTransactionNotFound = errors.New("bank transaction not found")
	ErrInvalidAmount       = errors.New("amount must be non-zero")
	ErrBookingConflict     = errors.New("transaction is no longer available for booking")
	ErrMissingContact      = errors.New("relation booking requires a contact")
	ErrMissingAccount      = errors.New("direct booking requires an account")

	// Settlement errors
	ErrSettlementConflict         = errors.New("transaction is not pending settlement")
	ErrSplitSettlementUnsupported = errors.New("partial settlement across multiple invoices is not supported")

	// Invoice errors
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoiceSettled  = errors.New("invoice is already settled")

	// Rule errors
	ErrRuleNotFound = errors.New("rule not found")
	ErrEmptyKeyword = errors.New("rule keyword must not be empty")

	// Enrichment errors
	ErrEnrichmentUnavailable = errors.New("enrichment collaborator unavailable")
)
