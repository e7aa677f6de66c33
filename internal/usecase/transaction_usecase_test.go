package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase/mocks"
)

type transactionFixture struct {
	*bookingFixture
	ruleRepo *mocks.MockRuleRepository
	uc       *usecase.TransactionUseCase
}

func newTransactionFixture() *transactionFixture {
	booking := newBookingFixture()
	ruleRepo := mocks.NewMockRuleRepository()

	rules := usecase.NewRuleUseCase(ruleRepo, booking.auditRepo, mocks.NewMockIDGenerator(), nil)

	return &transactionFixture{
		bookingFixture: booking,
		ruleRepo:       ruleRepo,
		uc: usecase.NewTransactionUseCase(
			booking.transactionRepo,
			booking.uc,
			rules,
			booking.auditRepo,
			mocks.NewMockIDGenerator(),
		),
	}
}

func TestTransactionUseCase_IngestBatch(t *testing.T) {
	f := newTransactionFixture()

	txs, err := f.uc.IngestBatch(context.Background(), []usecase.IngestInput{
		{
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Amount:       decimal.NewFromFloat(-54.45),
			Description:  "SEPA Incasso KPN B.V.",
			Counterparty: "KPN B.V.",
		},
		{
			Date:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromFloat(850),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("transaction count = %d, want 2", len(txs))
	}
	for _, tx := range txs {
		if tx.ID == "" {
			t.Error("every ingested transaction must get an ID")
		}
		if tx.Status != domain.TransactionStatusUnmatched {
			t.Errorf("status = %s, want unmatched", tx.Status)
		}
	}

	stored, err := f.transactionRepo.ListByStatus(context.Background(), domain.TransactionStatusUnmatched, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("stored count = %d, want 2", len(stored))
	}
}

func TestTransactionUseCase_IngestBatchRejectsZeroAmount(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.uc.IngestBatch(context.Background(), []usecase.IngestInput{
		{Date: time.Now(), Amount: decimal.Zero},
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	stored, _ := f.transactionRepo.ListByStatus(context.Background(), domain.TransactionStatusUnmatched, 10, 0)
	if len(stored) != 0 {
		t.Error("an invalid batch must not be stored partially")
	}
}

func TestTransactionUseCase_ConfirmBooksAndLearns(t *testing.T) {
	f := newTransactionFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:           "tx-1",
		Amount:       decimal.NewFromFloat(-54.45),
		Counterparty: "KPN B.V.",
		Status:       domain.TransactionStatusUnmatched,
	})

	entry, err := f.uc.Confirm(context.Background(), "tx-1", usecase.ConfirmInput{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != domain.EntryStatusFinal {
		t.Errorf("entry status = %s, want final", entry.Status)
	}

	booked, _ := f.transactionRepo.GetByID(context.Background(), "tx-1")
	if booked.Status != domain.TransactionStatusBooked {
		t.Errorf("transaction status = %s, want booked", booked.Status)
	}

	// The confirmation teaches the rule store.
	rule, err := f.ruleRepo.GetByKeyword(context.Background(), "kpn b.v.")
	if err != nil {
		t.Fatalf("expected a learned rule: %v", err)
	}
	if rule.AccountID == nil || *rule.AccountID != "acc-telecom" {
		t.Error("learned rule must carry the confirmed account")
	}
}

func TestTransactionUseCase_ConfirmRecordsCorrection(t *testing.T) {
	f := newTransactionFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:           "tx-1",
		Amount:       decimal.NewFromFloat(-54.45),
		Counterparty: "KPN B.V.",
		Status:       domain.TransactionStatusUnmatched,
		Suggestion: &domain.Suggestion{
			Score:     85,
			Source:    "vendor",
			Mode:      domain.BookingModeDirect,
			AccountID: "acc-wrong",
		},
	})

	if _, err := f.uc.Confirm(context.Background(), "tx-1", usecase.ConfirmInput{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var corrections int
	for _, log := range f.auditRepo.Logs() {
		if log.Action == domain.AuditActionCorrection {
			corrections++
			if log.Detail["suggested_account"] != "acc-wrong" || log.Detail["chosen_account"] != "acc-telecom" {
				t.Errorf("unexpected correction detail: %+v", log.Detail)
			}
		}
	}
	if corrections != 1 {
		t.Errorf("correction records = %d, want 1", corrections)
	}
}

func TestTransactionUseCase_ConfirmSurvivesLearnFailure(t *testing.T) {
	f := newTransactionFixture()
	f.transactionRepo.Seed(&domain.BankTransaction{
		ID:           "tx-1",
		Amount:       decimal.NewFromFloat(-54.45),
		Counterparty: "KPN B.V.",
		Status:       domain.TransactionStatusUnmatched,
	})
	f.ruleRepo.GetByKeywordFunc = func(ctx context.Context, keyword string) (*domain.Rule, error) {
		return nil, errors.New("rules table unavailable")
	}

	entry, err := f.uc.Confirm(context.Background(), "tx-1", usecase.ConfirmInput{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if err != nil {
		t.Fatalf("a learning failure must not fail the booking: %v", err)
	}
	if entry == nil {
		t.Fatal("expected the committed entry back")
	}
}

func TestTransactionUseCase_ConfirmUnknownTransaction(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.uc.Confirm(context.Background(), "missing", usecase.ConfirmInput{
		Mode:      domain.BookingModeDirect,
		AccountID: "acc-telecom",
	})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}
