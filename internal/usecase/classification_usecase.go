package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/classify"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// BatchReport aggregates one classification run: counts per outcome and a
// ten-bucket confidence histogram for the external summary view.
type BatchReport struct {
	Processed          int
	AutoBookedDirect   int
	AutoBookedRelation int
	Suggested          int
	NeedsReview        int
	Conflicts          int
	Histogram          [10]int
	StartedAt          time.Time
	FinishedAt         time.Time
}

// ClassificationUseCase runs the pipeline over a batch of unmatched
// transactions and feeds qualifying suggestions to the booking engine. The
// pipeline itself is stateless per transaction, so the batch fans out over
// a bounded worker pool.
type ClassificationUseCase struct {
	pipeline        *classify.Pipeline
	transactionRepo TransactionRepository
	booking         *BookingUseCase
	metrics         ClassificationMetrics
	workers         int
	logger          zerolog.Logger
}

// NewClassificationUseCase creates a new ClassificationUseCase.
func NewClassificationUseCase(
	pipeline *classify.Pipeline,
	transactionRepo TransactionRepository,
	booking *BookingUseCase,
	metrics ClassificationMetrics,
	workers int,
	logger zerolog.Logger,
) *ClassificationUseCase {
	if workers <= 0 {
		workers = DefaultClassifyWorkers
	}
	return &ClassificationUseCase{
		pipeline:        pipeline,
		transactionRepo: transactionRepo,
		booking:         booking,
		metrics:         metrics,
		workers:         workers,
		logger:          logger,
	}
}

// ClassifyOne classifies a single transaction without booking it.
func (uc *ClassificationUseCase) ClassifyOne(ctx context.Context, transactionID string) (*domain.Suggestion, error) {
	bankTx, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	suggestion, err := uc.pipeline.Classify(ctx, bankTx)
	if err != nil {
		return nil, err
	}
	if suggestion == nil {
		return nil, nil
	}

	if err := uc.transactionRepo.UpdateSuggestion(ctx, bankTx.ID, suggestion, time.Now().UTC()); err != nil {
		return nil, err
	}
	return suggestion, nil
}

// RunBatch classifies all unmatched transactions, persists their
// suggestions, auto-books everything at or above the auto-book threshold
// and returns the batch report.
func (uc *ClassificationUseCase) RunBatch(ctx context.Context) (*BatchReport, error) {
	report := &BatchReport{StartedAt: time.Now().UTC()}

	pending, err := uc.transactionRepo.ListByStatus(ctx, domain.TransactionStatusUnmatched, DefaultBatchLimit, 0)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, uc.workers)
	)

	for _, bankTx := range pending {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(bankTx *domain.BankTransaction) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := uc.classifyAndBook(ctx, bankTx)

			mu.Lock()
			defer mu.Unlock()
			report.Processed++
			uc.tally(report, outcome)
		}(bankTx)
	}
	wg.Wait()

	report.FinishedAt = time.Now().UTC()
	return report, ctx.Err()
}

type classifyOutcome struct {
	suggestion *domain.Suggestion
	booked     bool
	conflict   bool
}

func (uc *ClassificationUseCase) classifyAndBook(ctx context.Context, bankTx *domain.BankTransaction) classifyOutcome {
	suggestion, err := uc.pipeline.Classify(ctx, bankTx)
	if err != nil || suggestion == nil {
		return classifyOutcome{}
	}

	uc.metrics.ObserveConfidence(suggestion.Score)
	uc.metrics.CountLayerHit(suggestion.Source)

	if err := uc.transactionRepo.UpdateSuggestion(ctx, bankTx.ID, suggestion, time.Now().UTC()); err != nil {
		uc.logger.Error().Err(err).Str("transaction_id", bankTx.ID).Msg("failed to persist suggestion")
		return classifyOutcome{}
	}

	if suggestion.Score < uc.pipeline.Config().AutoBookThreshold {
		return classifyOutcome{suggestion: suggestion}
	}

	if _, err := uc.booking.Book(ctx, bankTx.ID, *suggestion); err != nil {
		if errors.Is(err, domain.ErrBookingConflict) {
			return classifyOutcome{suggestion: suggestion, conflict: true}
		}
		uc.metrics.CountBookingError()
		uc.logger.Error().Err(err).Str("transaction_id", bankTx.ID).Msg("auto-booking failed")
		return classifyOutcome{suggestion: suggestion}
	}

	uc.metrics.CountAutoBook(suggestion.Mode)
	return classifyOutcome{suggestion: suggestion, booked: true}
}

func (uc *ClassificationUseCase) tally(report *BatchReport, outcome classifyOutcome) {
	if outcome.suggestion == nil {
		report.NeedsReview++
		return
	}

	score := outcome.suggestion.Score
	bucket := score / 10
	if bucket > 9 {
		bucket = 9
	}
	report.Histogram[bucket]++

	switch {
	case outcome.conflict:
		report.Conflicts++
	case outcome.booked && outcome.suggestion.Mode == domain.BookingModeRelation:
		report.AutoBookedRelation++
	case outcome.booked:
		report.AutoBookedDirect++
	case score >= uc.pipeline.Config().SuggestThreshold:
		report.Suggested++
	default:
		report.NeedsReview++
	}
}
