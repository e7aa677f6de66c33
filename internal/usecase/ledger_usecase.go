package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// LedgerUseCase handles ledger-wide queries and the double-entry
// consistency check.
type LedgerUseCase struct {
	journalRepo JournalRepository
	invoiceRepo InvoiceRepository
	idGen       IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(journalRepo JournalRepository, invoiceRepo InvoiceRepository, idGen IDGenerator) *LedgerUseCase {
	return &LedgerUseCase{journalRepo: journalRepo, invoiceRepo: invoiceRepo, idGen: idGen}
}

// GetEntry retrieves a journal entry with its lines.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetEntry(ctx, id)
}

// EntriesForTransaction lists all journal entries a bank transaction
// produced (booking entry plus, after settlement, the clearing entry).
func (uc *LedgerUseCase) EntriesForTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	return uc.journalRepo.ListByTransaction(ctx, transactionID)
}

// ConsistencyResult reports the ledger-wide double-entry check.
type ConsistencyResult struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Consistent  bool
	CheckedAt   time.Time
}

// CheckConsistency verifies that total debits equal total credits across
// all final journal entries.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyResult, error) {
	totalDebit, totalCredit, err := uc.journalRepo.FinalTotals(ctx)
	if err != nil {
		return nil, err
	}

	result := &ConsistencyResult{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Consistent:  totalDebit.Equal(totalCredit),
		CheckedAt:   time.Now().UTC(),
	}
	if !result.Consistent {
		return result, fmt.Errorf("ledger inconsistency: debits=%s credits=%s", totalDebit, totalCredit)
	}
	return result, nil
}

// CreateInvoiceInput represents input for registering an invoice.
type CreateInvoiceInput struct {
	Number    string
	ContactID string
	Kind      domain.InvoiceKind
	Date      time.Time
	Amount    decimal.Decimal
}

// CreateInvoice registers an open invoice for later matching.
func (uc *LedgerUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:        uc.idGen.Generate(),
		Number:    input.Number,
		ContactID: input.ContactID,
		Kind:      input.Kind,
		Date:      input.Date,
		Amount:    input.Amount,
		Status:    domain.InvoiceStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice by ID.
func (uc *LedgerUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, id)
}
