package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// IngestTransactionsRequest represents a batch of normalized bank
// statement lines.
type IngestTransactionsRequest struct {
	Transactions []IngestTransactionItem `json:"transactions"`
}

// IngestTransactionItem represents a single statement line in a batch.
type IngestTransactionItem struct {
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty"`
}

// ToUseCaseInput converts to use case input.
func (r *IngestTransactionsRequest) ToUseCaseInput() []usecase.IngestInput {
	inputs := make([]usecase.IngestInput, len(r.Transactions))
	for i, t := range r.Transactions {
		inputs[i] = usecase.IngestInput{
			Date:         t.Date,
			Amount:       t.Amount,
			Description:  t.Description,
			Counterparty: t.Counterparty,
		}
	}
	return inputs
}

// ConfirmTransactionRequest represents the user's booking decision for a
// classified transaction.
type ConfirmTransactionRequest struct {
	Mode      string `json:"mode"`
	AccountID string `json:"account_id"`
	ContactID string `json:"contact_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ConfirmTransactionRequest) ToUseCaseInput() usecase.ConfirmInput {
	return usecase.ConfirmInput{
		Mode:      domain.BookingMode(r.Mode),
		AccountID: r.AccountID,
		ContactID: r.ContactID,
	}
}

// SettleTransactionRequest represents a request to settle a pending
// transaction against an open invoice.
type SettleTransactionRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code: r.Code,
		Name: r.Name,
		Type: domain.AccountType(r.Type),
	}
}

// CreateContactRequest represents a request to create a contact.
type CreateContactRequest struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	DefaultAccountID string `json:"default_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateContactRequest) ToUseCaseInput() usecase.CreateContactInput {
	return usecase.CreateContactInput{
		Name:             r.Name,
		Role:             domain.ContactRole(r.Role),
		DefaultAccountID: r.DefaultAccountID,
	}
}

// CreateInvoiceRequest represents a request to register an invoice.
type CreateInvoiceRequest struct {
	Number    string          `json:"number"`
	ContactID string          `json:"contact_id"`
	Kind      string          `json:"kind"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		Number:    r.Number,
		ContactID: r.ContactID,
		Kind:      domain.InvoiceKind(r.Kind),
		Date:      r.Date,
		Amount:    r.Amount,
	}
}
