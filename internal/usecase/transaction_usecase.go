package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// TransactionUseCase covers the ingestion boundary and the user review
// flow: confirming or correcting a suggestion books the transaction and is
// the only path that feeds the self-learning rule store.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	booking         *BookingUseCase
	rules           *RuleUseCase
	auditRepo       AuditRepository
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	transactionRepo TransactionRepository,
	booking *BookingUseCase,
	rules *RuleUseCase,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		booking:         booking,
		rules:           rules,
		auditRepo:       auditRepo,
		idGen:           idGen,
	}
}

// IngestInput is one normalized bank transaction from the import step.
type IngestInput struct {
	Date         time.Time
	Amount       decimal.Decimal
	Description  string
	Counterparty string
}

// IngestBatch stores a batch of normalized transactions as unmatched.
func (uc *TransactionUseCase) IngestBatch(ctx context.Context, inputs []IngestInput) ([]*domain.BankTransaction, error) {
	now := time.Now().UTC()

	txs := make([]*domain.BankTransaction, 0, len(inputs))
	for _, input := range inputs {
		bankTx := &domain.BankTransaction{
			ID:           uc.idGen.Generate(),
			Date:         input.Date,
			Amount:       input.Amount,
			Description:  input.Description,
			Counterparty: input.Counterparty,
			Status:       domain.TransactionStatusUnmatched,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := bankTx.Validate(); err != nil {
			return nil, err
		}
		txs = append(txs, bankTx)
	}

	if err := uc.transactionRepo.CreateBatch(ctx, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// ConfirmInput is the user's accepted or corrected booking decision.
type ConfirmInput struct {
	Mode      domain.BookingMode
	AccountID string
	ContactID string
}

// Confirm books the transaction with the user's decision and teaches the
// rule store. A correction (decision differing from the stored suggestion)
// is additionally recorded in the audit trail.
func (uc *TransactionUseCase) Confirm(ctx context.Context, transactionID string, input ConfirmInput) (*domain.JournalEntry, error) {
	bankTx, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	suggestion := domain.Suggestion{
		Score:       100,
		Source:      "user",
		Reason:      "confirmed by user",
		Mode:        input.Mode,
		AccountID:   input.AccountID,
		ContactID:   input.ContactID,
		Description: bankTx.Description,
	}

	entry, err := uc.booking.Book(ctx, transactionID, suggestion)
	if err != nil {
		return nil, err
	}

	if corrected := uc.isCorrection(bankTx, input); corrected {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Action:       domain.AuditActionCorrection,
			ResourceType: "bank_transaction",
			ResourceID:   transactionID,
			Detail: domain.JSON{
				"suggested_account": suggestedAccount(bankTx),
				"chosen_account":    input.AccountID,
				"mode":              string(input.Mode),
			},
			CreatedAt: time.Now().UTC(),
		})
	}

	var contactID *string
	if input.ContactID != "" {
		contactID = &input.ContactID
	}
	if _, err := uc.rules.Learn(ctx, bankTx, input.Mode, input.AccountID, contactID); err != nil {
		// Learning must not undo a committed booking.
		return entry, nil
	}

	return entry, nil
}

// Get retrieves a bank transaction by ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*domain.BankTransaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListByStatus lists transactions in the given lifecycle status.
func (uc *TransactionUseCase) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.transactionRepo.ListByStatus(ctx, status, limit, offset)
}

func (uc *TransactionUseCase) isCorrection(bankTx *domain.BankTransaction, input ConfirmInput) bool {
	if bankTx.Suggestion == nil {
		return false
	}
	return bankTx.Suggestion.AccountID != input.AccountID || bankTx.Suggestion.Mode != input.Mode
}

func suggestedAccount(bankTx *domain.BankTransaction) string {
	if bankTx.Suggestion == nil {
		return ""
	}
	return bankTx.Suggestion.AccountID
}
