package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// BookingConfig names the system accounts the booking engine posts against.
type BookingConfig struct {
	BankAccountCode     string
	SuspenseAccountCode string
}

// BookingUseCase turns an accepted suggestion into a balanced journal entry.
// Direct mode posts bank against the suggested account and finalizes the
// transaction; relation mode posts bank against the suspense account and
// leaves the transaction pending until settlement.
type BookingUseCase struct {
	cfg             BookingConfig
	txManager       TransactionManager
	accountRepo     AccountRepository
	contactRepo     ContactRepository
	journalRepo     JournalRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewBookingUseCase creates a new BookingUseCase. Retrier may be nil, in
// which case a transient database failure surfaces to the caller.
func NewBookingUseCase(
	cfg BookingConfig,
	txManager TransactionManager,
	accountRepo AccountRepository,
	contactRepo ContactRepository,
	journalRepo JournalRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	retrier Retrier,
) *BookingUseCase {
	return &BookingUseCase{
		cfg:             cfg,
		txManager:       txManager,
		accountRepo:     accountRepo,
		contactRepo:     contactRepo,
		journalRepo:     journalRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// Book posts the suggestion for the given bank transaction. The whole
// operation runs inside one database transaction; a concurrent booking
// attempt on the same bank transaction loses with ErrBookingConflict.
// A deadlocked or serialization-aborted transaction is rolled back and the
// body re-run through the retrier.
func (uc *BookingUseCase) Book(ctx context.Context, transactionID string, suggestion domain.Suggestion) (*domain.JournalEntry, error) {
	if suggestion.Mode == domain.BookingModeDirect && suggestion.AccountID == "" {
		return nil, domain.ErrMissingAccount
	}

	var entry *domain.JournalEntry
	book := func() error {
		var err error
		entry, err = uc.bookOnce(ctx, transactionID, suggestion)
		return err
	}
	if uc.retrier == nil {
		if err := book(); err != nil {
			return nil, err
		}
		return entry, nil
	}
	if err := uc.retrier.Retry(ctx, book); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *BookingUseCase) bookOnce(ctx context.Context, transactionID string, suggestion domain.Suggestion) (*domain.JournalEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	bankTx, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if !bankTx.Bookable() {
		return nil, domain.ErrBookingConflict
	}
	if err := bankTx.Validate(); err != nil {
		return nil, err
	}

	bankAccount, err := uc.accountRepo.GetByCode(ctx, uc.cfg.BankAccountCode)
	if err != nil {
		return nil, err
	}

	var counterAccountID string
	var contactID string
	var nextStatus domain.TransactionStatus

	switch suggestion.Mode {
	case domain.BookingModeRelation:
		contactID, err = uc.resolveContact(ctx, tx, bankTx, suggestion)
		if err != nil {
			return nil, err
		}
		suspense, err := uc.accountRepo.GetByCode(ctx, uc.cfg.SuspenseAccountCode)
		if err != nil {
			return nil, err
		}
		counterAccountID = suspense.ID
		nextStatus = domain.TransactionStatusPending
	default:
		account, err := uc.accountRepo.GetByID(ctx, suggestion.AccountID)
		if err != nil {
			return nil, err
		}
		if !account.Postable() {
			return nil, domain.ErrAccountInactive
		}
		counterAccountID = account.ID
		nextStatus = domain.TransactionStatusBooked
	}

	entry := uc.buildEntry(bankTx, suggestion, bankAccount.ID, counterAccountID)
	if err := entry.Finalize(); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.CreateEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.transactionRepo.MarkBooked(ctx, tx, bankTx.ID, nextStatus, entry.ID, now); err != nil {
		return nil, err
	}

	action := domain.AuditActionBookDirect
	if suggestion.Mode == domain.BookingModeRelation {
		action = domain.AuditActionBookRelation
	}
	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       action,
		ResourceType: "bank_transaction",
		ResourceID:   bankTx.ID,
		Detail: domain.JSON{
			"entry_id":   entry.ID,
			"amount":     bankTx.Amount.String(),
			"account_id": counterAccountID,
			"contact_id": contactID,
			"score":      suggestion.Score,
			"source":     suggestion.Source,
		},
		CreatedAt: now,
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// resolveContact returns the contact for a relation booking, creating a new
// contact from the suggested counterparty name when the classification
// implies one that does not exist yet. A relation booking without any
// contact is a validation error, never a silent default.
func (uc *BookingUseCase) resolveContact(ctx context.Context, tx Transaction, bankTx *domain.BankTransaction, suggestion domain.Suggestion) (string, error) {
	if suggestion.ContactID != "" {
		contact, err := uc.contactRepo.GetByID(ctx, suggestion.ContactID)
		if err != nil {
			return "", err
		}
		return contact.ID, nil
	}

	name := strings.TrimSpace(suggestion.ContactName)
	if name == "" {
		name = strings.TrimSpace(bankTx.Counterparty)
	}
	if name == "" {
		return "", domain.ErrMissingContact
	}

	role := domain.ContactRoleCustomer
	if bankTx.Outgoing() {
		role = domain.ContactRoleSupplier
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.contactRepo.CreateTx(ctx, tx, contact); err != nil {
		return "", err
	}

	return contact.ID, nil
}

// buildEntry constructs the two-line bank entry. Incoming money debits the
// bank account, outgoing money credits it; the counter account mirrors.
func (uc *BookingUseCase) buildEntry(bankTx *domain.BankTransaction, suggestion domain.Suggestion, bankAccountID, counterAccountID string) *domain.JournalEntry {
	description := suggestion.Description
	if description == "" {
		description = bankTx.Description
	}

	now := time.Now().UTC()
	entry := &domain.JournalEntry{
		ID:            uc.idGen.Generate(),
		Date:          bankTx.Date,
		Description:   description,
		Status:        domain.EntryStatusDraft,
		Kind:          domain.EntryKindBank,
		TransactionID: &bankTx.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	amount := bankTx.AbsAmount()
	if bankTx.Outgoing() {
		entry.AddDebit(counterAccountID, amount)
		entry.AddCredit(bankAccountID, amount)
	} else {
		entry.AddDebit(bankAccountID, amount)
		entry.AddCredit(counterAccountID, amount)
	}

	for i := range entry.Lines {
		entry.Lines[i].ID = uc.idGen.Generate()
		entry.Lines[i].EntryID = entry.ID
	}

	return entry
}
