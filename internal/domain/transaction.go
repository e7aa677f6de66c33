package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle status of a bank transaction.
//
//	unmatched -> booked            (direct booking, terminal)
//	unmatched -> pending           (relation booking via suspense)
//	pending   -> reconciled        (settlement, terminal)
type TransactionStatus string

const (
	TransactionStatusUnmatched  TransactionStatus = "unmatched"
	TransactionStatusMatched    TransactionStatus = "matched"
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusBooked     TransactionStatus = "booked"
	TransactionStatusReconciled TransactionStatus = "reconciled"
)

// BankTransaction is one normalized bank statement line. Amount is signed:
// negative for money leaving the bank account, positive for money received.
type BankTransaction struct {
	ID                string
	Date              time.Time
	Amount            decimal.Decimal
	Description       string
	Counterparty      string
	Status            TransactionStatus
	Confidence        *int
	Suggestion        *Suggestion
	JournalEntryID    *string
	SettlementEntryID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the minimal shape of an ingested transaction.
func (t *BankTransaction) Validate() error {
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}

// Outgoing reports whether money left the bank account.
func (t *BankTransaction) Outgoing() bool {
	return t.Amount.IsNegative()
}

// AbsAmount returns the unsigned amount.
func (t *BankTransaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// Bookable reports whether the transaction can still be booked.
func (t *BankTransaction) Bookable() bool {
	return t.Status == TransactionStatusUnmatched || t.Status == TransactionStatusMatched
}
