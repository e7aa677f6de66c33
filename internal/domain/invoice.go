package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusOpen    InvoiceStatus = "open"
	InvoiceStatusSettled InvoiceStatus = "settled"
)

// InvoiceKind distinguishes sales invoices (money in) from purchase
// invoices (money out).
type InvoiceKind string

const (
	InvoiceKindSales    InvoiceKind = "sales"
	InvoiceKindPurchase InvoiceKind = "purchase"
)

// Invoice is an open or settled invoice awaiting a bank transaction match.
type Invoice struct {
	ID        string
	Number    string
	ContactID string
	Kind      InvoiceKind
	Date      time.Time
	Amount    decimal.Decimal
	Status    InvoiceStatus
	SettledAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the invoice can still be matched.
func (i *Invoice) Open() bool {
	return i.Status == InvoiceStatusOpen
}

// MatchesAmount reports whether the signed transaction amount clears this
// invoice exactly. Sales invoices are cleared by incoming money, purchase
// invoices by outgoing money.
func (i *Invoice) MatchesAmount(txAmount decimal.Decimal) bool {
	switch i.Kind {
	case InvoiceKindSales:
		return txAmount.Equal(i.Amount)
	case InvoiceKindPurchase:
		return txAmount.Neg().Equal(i.Amount)
	}
	return false
}
