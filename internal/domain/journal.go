package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle status of a journal entry.
type EntryStatus string

const (
	EntryStatusDraft EntryStatus = "draft"
	EntryStatusFinal EntryStatus = "final"
)

// Entry kinds tag the business origin of a journal entry.
const (
	EntryKindBank       = "bank"
	EntryKindSettlement = "settlement"
	EntryKindSales      = "sales"
	EntryKindPurchase   = "purchase"
	EntryKindManual     = "manual"
)

// JournalEntry is a dated, described set of journal lines. The balance
// invariant is checked exactly at the Draft->Final transition, so a draft
// entry may be temporarily unbalanced while it is being built.
type JournalEntry struct {
	ID            string
	Date          time.Time
	Description   string
	Status        EntryStatus
	Kind          string
	TransactionID *string
	Lines         []JournalLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// JournalLine is a single debit or credit against one account. Exactly one
// of Debit and Credit is positive; the other is zero.
type JournalLine struct {
	ID        string
	EntryID   string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Validate checks the debit/credit exclusivity of a single line.
func (l *JournalLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrNegativeLine
	}
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return ErrInvalidLine
	}
	return nil
}

// AddDebit appends a debit line for the given account.
func (e *JournalEntry) AddDebit(accountID string, amount decimal.Decimal) {
	e.Lines = append(e.Lines, JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero})
}

// AddCredit appends a credit line for the given account.
func (e *JournalEntry) AddCredit(accountID string, amount decimal.Decimal) {
	e.Lines = append(e.Lines, JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount})
}

// TotalDebit sums the debit side of the entry.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the entry.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// Balanced reports whether debits equal credits.
func (e *JournalEntry) Balanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// Finalize transitions the entry Draft->Final. This is the only place the
// balance invariant fires: the entry must have at least one line, every line
// must be valid, and total debits must equal total credits.
func (e *JournalEntry) Finalize() error {
	if e.Status == EntryStatusFinal {
		return ErrEntryFinalized
	}
	if len(e.Lines) == 0 {
		return ErrEmptyEntry
	}
	for i := range e.Lines {
		if err := e.Lines[i].Validate(); err != nil {
			return err
		}
	}
	if !e.Balanced() {
		return ErrUnbalancedEntry
	}
	e.Status = EntryStatusFinal
	return nil
}

// TouchesAccount reports whether any line references the given account.
func (e *JournalEntry) TouchesAccount(accountID string) bool {
	for _, l := range e.Lines {
		if l.AccountID == accountID {
			return true
		}
	}
	return false
}
