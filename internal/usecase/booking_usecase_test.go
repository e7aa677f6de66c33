package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/repository/postgres"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase/mocks"
)

type bookingFixture struct {
	txManager       *mocks.MockTransactionManager
	accountRepo     *mocks.MockAccountRepository
	contactRepo     *mocks.MockContactRepository
	journalRepo     *mocks.MockJournalRepository
	transactionRepo *mocks.MockTransactionRepository
	auditRepo       *mocks.MockAuditRepository
	uc              *usecase.BookingUseCase
}

func newBookingFixture() *bookingFixture {
	return newBookingFixtureWithRetrier(nil)
}

func newBookingFixtureWithRetrier(retrier usecase.Retrier) *bookingFixture {
	f := &bookingFixture{
		txManager:       mocks.NewMockTransactionManager(),
		accountRepo:     mocks.NewMockAccountRepository(),
		contactRepo:     mocks.NewMockContactRepository(),
		journalRepo:     mocks.NewMockJournalRepository(),
		transactionRepo: mocks.NewMockTransactionRepository(),
		auditRepo:       mocks.NewMockAuditRepository(),
	}

	f.accountRepo.Seed(
		&domain.Account{ID: "acc-bank", Code: "1100", Name: "Bank", Type: domain.AccountTypeAsset, Active: true, SystemProtected: true},
		&domain.Account{ID: "acc-suspense", Code: "1290", Name: "Vraagposten", Type: domain.AccountTypeAsset, Active: true, SystemProtected: true},
		&domain.Account{ID: "acc-telecom", Code: "4600", Name: "Telefoon en internet", Type: domain.AccountTypeExpense, Active: true},
		&domain.Account{ID: "acc-closed", Code: "4650", Name: "Oude kostenpost", Type: domain.AccountTypeExpense, Active: false},
	)

	f.uc = usecase.NewBookingUseCase(
		usecase.BookingConfig{BankAccountCode: "1100", SuspenseAccountCode: "1290"},
		f.txManager,
		f.accountRepo,
		f.contactRepo,
		f.journalRepo,
		f.transactionRepo,
		f.auditRepo,
		mocks.NewMockIDGenerator(),
		retrier,
	)

	return f
}

func TestBookingUseCase_BookDirect(t *testing.T) {
	f := newBookingFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:          "tx-1",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(-54.45),
		Description: "SEPA Incasso KPN B.V.",
		Status:      domain.TransactionStatusUnmatched,
	})

	entry, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
		Score:     90,
		Source:    "vendor",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Status != domain.EntryStatusFinal {
		t.Errorf("entry status = %s, want final", entry.Status)
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(entry.Lines))
	}

	// Outgoing money debits the expense account and credits the bank.
	amount := decimal.NewFromFloat(54.45)
	if entry.Lines[0].AccountID != "acc-telecom" || !entry.Lines[0].Debit.Equal(amount) {
		t.Errorf("unexpected debit line: %+v", entry.Lines[0])
	}
	if entry.Lines[1].AccountID != "acc-bank" || !entry.Lines[1].Credit.Equal(amount) {
		t.Errorf("unexpected credit line: %+v", entry.Lines[1])
	}

	booked, _ := f.transactionRepo.GetByID(context.Background(), "tx-1")
	if booked.Status != domain.TransactionStatusBooked {
		t.Errorf("transaction status = %s, want booked", booked.Status)
	}
	if booked.JournalEntryID == nil || *booked.JournalEntryID != entry.ID {
		t.Error("transaction must reference the journal entry")
	}

	if len(f.txManager.Txs) != 1 || !f.txManager.Txs[0].Committed {
		t.Error("expected exactly one committed database transaction")
	}
	if logs := f.auditRepo.Logs(); len(logs) != 1 || logs[0].Action != domain.AuditActionBookDirect {
		t.Errorf("expected one book_direct audit record, got %+v", logs)
	}
}

func TestBookingUseCase_BookDirectIncoming(t *testing.T) {
	f := newBookingFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:     "tx-1",
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromFloat(850),
		Status: domain.TransactionStatusUnmatched,
	})

	entry, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Incoming money debits the bank.
	if entry.Lines[0].AccountID != "acc-bank" || !entry.Lines[0].Debit.Equal(decimal.NewFromFloat(850)) {
		t.Errorf("unexpected debit line: %+v", entry.Lines[0])
	}
}

func TestBookingUseCase_BookRelation(t *testing.T) {
	f := newBookingFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:           "tx-1",
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromFloat(-45.20),
		Counterparty: "BLOEMIST JANSEN",
		Status:       domain.TransactionStatusUnmatched,
	})

	entry, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:        domain.BookingModeRelation,
		ContactName: "Bloemist Jansen",
		Score:       100,
		Source:      "contact",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !entry.TouchesAccount("acc-suspense") {
		t.Error("relation booking must post against the suspense account")
	}

	booked, _ := f.transactionRepo.GetByID(context.Background(), "tx-1")
	if booked.Status != domain.TransactionStatusPending {
		t.Errorf("transaction status = %s, want pending", booked.Status)
	}

	// The unknown counterparty becomes a new supplier contact.
	contacts, _ := f.contactRepo.List(context.Background())
	if len(contacts) != 1 {
		t.Fatalf("contact count = %d, want 1", len(contacts))
	}
	if contacts[0].Name != "Bloemist Jansen" || contacts[0].Role != domain.ContactRoleSupplier {
		t.Errorf("unexpected contact: %+v", contacts[0])
	}
}

func TestBookingUseCase_BookRelationExistingContact(t *testing.T) {
	f := newBookingFixture()
	f.contactRepo.Seed(&domain.Contact{ID: "contact-1", Name: "Bloemist Jansen", Role: domain.ContactRoleSupplier})
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:     "tx-1",
		Amount: decimal.NewFromFloat(-45.20),
		Status: domain.TransactionStatusUnmatched,
	})

	if _, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeRelation,
		ContactID: "contact-1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contacts, _ := f.contactRepo.List(context.Background())
	if len(contacts) != 1 {
		t.Errorf("no new contact should be created, got %d", len(contacts))
	}
}

func TestBookingUseCase_BookErrors(t *testing.T) {
	tests := []struct {
		name       string
		tx         *domain.BankTransaction
		suggestion domain.Suggestion
		errorType  error
	}{
		{
			name: "direct booking without account",
			tx: &domain.BankTransaction{
				ID: "tx-1", Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusUnmatched,
			},
			suggestion: domain.Suggestion{Mode: domain.BookingModeDirect},
			errorType:  domain.ErrMissingAccount,
		},
		{
			name: "already booked transaction conflicts",
			tx: &domain.BankTransaction{
				ID: "tx-1", Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusBooked,
			},
			suggestion: domain.Suggestion{Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
			errorType:  domain.ErrBookingConflict,
		},
		{
			name: "inactive account rejected",
			tx: &domain.BankTransaction{
				ID: "tx-1", Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusUnmatched,
			},
			suggestion: domain.Suggestion{Mode: domain.BookingModeDirect, AccountID: "acc-closed"},
			errorType:  domain.ErrAccountInactive,
		},
		{
			name: "relation booking without any contact",
			tx: &domain.BankTransaction{
				ID: "tx-1", Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusUnmatched,
			},
			suggestion: domain.Suggestion{Mode: domain.BookingModeRelation},
			errorType:  domain.ErrMissingContact,
		},
		{
			name: "zero amount rejected",
			tx: &domain.BankTransaction{
				ID: "tx-1", Amount: decimal.Zero, Status: domain.TransactionStatusUnmatched,
			},
			suggestion: domain.Suggestion{Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
			errorType:  domain.ErrInvalidAmount,
		},
		{
			name: "unknown transaction",
			suggestion: domain.Suggestion{
				Mode: domain.BookingModeDirect, AccountID: "acc-telecom",
			},
			errorType: domain.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			if tt.tx != nil {
				f.transactionRepo.Seed(tt.tx)
			}

			_, err := f.uc.Book(context.Background(), "tx-1", tt.suggestion)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}

			entries, _ := f.journalRepo.ListByTransaction(context.Background(), "tx-1")
			if len(entries) != 0 {
				t.Error("no journal entry may survive a failed booking")
			}
		})
	}
}

func TestBookingUseCase_RollbackOnPersistFailure(t *testing.T) {
	f := newBookingFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:     "tx-1",
		Amount: decimal.NewFromFloat(-10),
		Status: domain.TransactionStatusUnmatched,
	})

	persistErr := errors.New("connection reset")
	f.journalRepo.CreateEntryFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
		return persistErr
	}

	_, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if !errors.Is(err, persistErr) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if len(f.txManager.Txs) != 1 {
		t.Fatalf("expected one database transaction, got %d", len(f.txManager.Txs))
	}
	if f.txManager.Txs[0].Committed {
		t.Error("transaction must not commit after a persistence failure")
	}
	if !f.txManager.Txs[0].RolledBack {
		t.Error("transaction must roll back after a persistence failure")
	}
}

func TestBookingUseCase_RetriesDeadlock(t *testing.T) {
	f := newBookingFixtureWithRetrier(postgres.NewRetrier(zerolog.Nop()))
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:     "tx-1",
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromFloat(-10),
		Status: domain.TransactionStatusUnmatched,
	})

	// First attempt deadlocks; the retrier must roll back and re-run the
	// whole transaction body.
	attempts := 0
	f.journalRepo.CreateEntryFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	}

	entry, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil || entry.Status != domain.EntryStatusFinal {
		t.Fatalf("expected a final entry after retry, got %+v", entry)
	}
	if attempts != 2 {
		t.Errorf("persist attempts = %d, want 2", attempts)
	}

	if len(f.txManager.Txs) != 2 {
		t.Fatalf("expected two database transactions, got %d", len(f.txManager.Txs))
	}
	if !f.txManager.Txs[0].RolledBack || f.txManager.Txs[0].Committed {
		t.Error("deadlocked transaction must roll back without committing")
	}
	if !f.txManager.Txs[1].Committed {
		t.Error("retried transaction must commit")
	}
}

func TestBookingUseCase_RetrierKeepsDomainErrors(t *testing.T) {
	f := newBookingFixtureWithRetrier(postgres.NewRetrier(zerolog.Nop()))
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:     "tx-1",
		Amount: decimal.NewFromFloat(-10),
		Status: domain.TransactionStatusBooked,
	})

	_, err := f.uc.Book(context.Background(), "tx-1", domain.Suggestion{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if !errors.Is(err, domain.ErrBookingConflict) {
		t.Fatalf("expected booking conflict through the retrier, got %v", err)
	}
	if len(f.txManager.Txs) != 1 {
		t.Errorf("a domain error must not be retried, got %d transactions", len(f.txManager.Txs))
	}
}
