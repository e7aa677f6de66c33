package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/classify"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase/mocks"
)

// tableLayer answers with a canned suggestion per transaction ID.
type tableLayer struct {
	suggestions map[string]*domain.Suggestion
}

func (l *tableLayer) Name() string { return "table" }

func (l *tableLayer) Classify(_ context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	return l.suggestions[tx.ID], nil
}

func classificationPipeline(suggestions map[string]*domain.Suggestion) *classify.Pipeline {
	return classify.NewPipelineWithLayers(classify.DefaultConfig(), zerolog.Nop(), &tableLayer{suggestions: suggestions})
}

func TestClassificationUseCase_RunBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture()
	f.transactionRepo.Seed(
		&domain.BankTransaction{ID: "tx-auto", Amount: decimal.NewFromFloat(-54.45), Status: domain.TransactionStatusUnmatched},
		&domain.BankTransaction{ID: "tx-suggest", Amount: decimal.NewFromFloat(-12), Status: domain.TransactionStatusUnmatched},
		&domain.BankTransaction{ID: "tx-review", Amount: decimal.NewFromFloat(-9), Status: domain.TransactionStatusUnmatched},
		&domain.BankTransaction{ID: "tx-miss", Amount: decimal.NewFromFloat(-3), Status: domain.TransactionStatusUnmatched},
	)

	pipeline := classificationPipeline(map[string]*domain.Suggestion{
		"tx-auto":    {Score: 85, Source: "vendor", Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
		"tx-suggest": {Score: 72, Source: "enrichment", Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
		"tx-review":  {Score: 40, Source: "keyword", Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
	})

	metrics := mocks.NewMockClassificationMetrics(ctrl)
	metrics.EXPECT().ObserveConfidence(85)
	metrics.EXPECT().ObserveConfidence(72)
	metrics.EXPECT().ObserveConfidence(40)
	metrics.EXPECT().CountLayerHit("vendor")
	metrics.EXPECT().CountLayerHit("enrichment")
	metrics.EXPECT().CountLayerHit("keyword")
	metrics.EXPECT().CountAutoBook(domain.BookingModeDirect)

	uc := usecase.NewClassificationUseCase(pipeline, f.transactionRepo, f.uc, metrics, 2, zerolog.Nop())

	report, err := uc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Processed != 4 {
		t.Errorf("processed = %d, want 4", report.Processed)
	}
	if report.AutoBookedDirect != 1 {
		t.Errorf("auto-booked direct = %d, want 1", report.AutoBookedDirect)
	}
	if report.Suggested != 1 {
		t.Errorf("suggested = %d, want 1", report.Suggested)
	}
	if report.NeedsReview != 2 {
		t.Errorf("needs review = %d, want 2", report.NeedsReview)
	}
	if report.Conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", report.Conflicts)
	}

	// One hit per score bucket: 85 -> 8, 72 -> 7, 40 -> 4.
	for bucket, want := range map[int]int{8: 1, 7: 1, 4: 1} {
		if report.Histogram[bucket] != want {
			t.Errorf("histogram[%d] = %d, want %d", bucket, report.Histogram[bucket], want)
		}
	}

	booked, _ := f.transactionRepo.GetByID(context.Background(), "tx-auto")
	if booked.Status != domain.TransactionStatusBooked {
		t.Errorf("tx-auto status = %s, want booked", booked.Status)
	}
	suggested, _ := f.transactionRepo.GetByID(context.Background(), "tx-suggest")
	if suggested.Status != domain.TransactionStatusUnmatched {
		t.Errorf("tx-suggest status = %s, want unmatched", suggested.Status)
	}
	if suggested.Suggestion == nil || suggested.Suggestion.Score != 72 {
		t.Error("suggestion must be persisted for review")
	}
}

func TestClassificationUseCase_RunBatchCountsConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture()
	f.transactionRepo.Seed(
		&domain.BankTransaction{ID: "tx-1", Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusUnmatched},
	)
	// A concurrent booking wins between listing and locking.
	f.transactionRepo.GetByIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error) {
		return &domain.BankTransaction{ID: id, Amount: decimal.NewFromFloat(-10), Status: domain.TransactionStatusBooked}, nil
	}

	pipeline := classificationPipeline(map[string]*domain.Suggestion{
		"tx-1": {Score: 90, Source: "rule", Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
	})

	metrics := mocks.NewMockClassificationMetrics(ctrl)
	metrics.EXPECT().ObserveConfidence(90)
	metrics.EXPECT().CountLayerHit("rule")

	uc := usecase.NewClassificationUseCase(pipeline, f.transactionRepo, f.uc, metrics, 1, zerolog.Nop())

	report, err := uc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", report.Conflicts)
	}
	if report.AutoBookedDirect != 0 {
		t.Errorf("auto-booked = %d, want 0", report.AutoBookedDirect)
	}
}

func TestClassificationUseCase_ClassifyOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture()
	f.transactionRepo.Seed(
		&domain.BankTransaction{ID: "tx-1", Amount: decimal.NewFromFloat(-54.45), Status: domain.TransactionStatusUnmatched},
	)

	pipeline := classificationPipeline(map[string]*domain.Suggestion{
		"tx-1": {Score: 90, Source: "vendor", Mode: domain.BookingModeDirect, AccountID: "acc-telecom"},
	})

	uc := usecase.NewClassificationUseCase(pipeline, f.transactionRepo, f.uc, mocks.NewMockClassificationMetrics(ctrl), 1, zerolog.Nop())

	suggestion, err := uc.ClassifyOne(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion == nil || suggestion.Score != 90 {
		t.Fatalf("unexpected suggestion: %+v", suggestion)
	}

	// ClassifyOne persists but never books.
	stored, _ := f.transactionRepo.GetByID(context.Background(), "tx-1")
	if stored.Status != domain.TransactionStatusUnmatched {
		t.Errorf("status = %s, want unmatched", stored.Status)
	}
	if stored.Confidence == nil || *stored.Confidence != 90 {
		t.Error("confidence must be persisted")
	}
}
