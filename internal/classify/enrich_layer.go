package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// enrichmentResolver drives the two-phase collaborator exchange: a
// fact-finding call for an industry guess, then a category-mapping call over
// a filtered candidate list, followed by account extraction. Collaborator
// failures surface as domain.ErrEnrichmentUnavailable and are absorbed by
// the pipeline's fall-through; an unextractable response is "no suggestion",
// not an error.
type enrichmentResolver struct {
	cfg      Config
	accounts AccountFinder
	enricher Enricher
	logger   zerolog.Logger
}

func newEnrichmentResolver(cfg Config, accounts AccountFinder, enricher Enricher, logger zerolog.Logger) *enrichmentResolver {
	return &enrichmentResolver{cfg: cfg, accounts: accounts, enricher: enricher, logger: logger}
}

func (r *enrichmentResolver) available() bool {
	return r != nil && r.enricher != nil
}

// resolveAccount runs both collaborator phases and extraction. The returned
// Extraction is zero-valued with ok=false when the mapper answered but no
// account could be recovered.
func (r *enrichmentResolver) resolveAccount(ctx context.Context, tx *domain.BankTransaction) (Extraction, string, bool, error) {
	industry, err := r.factFind(ctx, tx)
	if err != nil {
		return Extraction{}, "", false, err
	}
	if industry == "" {
		return Extraction{}, "", false, nil
	}

	candidates, err := r.candidateAccounts(ctx, tx)
	if err != nil {
		return Extraction{}, industry, false, err
	}
	if len(candidates) == 0 {
		return Extraction{}, industry, false, nil
	}

	var response string
	err = r.withRetry(ctx, func(callCtx context.Context) error {
		var callErr error
		response, callErr = r.enricher.MapCategory(callCtx, industry, tx.Amount, candidates)
		return callErr
	})
	if err != nil {
		return Extraction{}, industry, false, fmt.Errorf("%w: category mapper: %s", domain.ErrEnrichmentUnavailable, err)
	}

	extraction, ok := ExtractAccountRef(response, candidates)
	return extraction, industry, ok, nil
}

// factFind queries the fact-finding collaborator for an industry guess.
// An explicit "no match" answer returns an empty string without error.
func (r *enrichmentResolver) factFind(ctx context.Context, tx *domain.BankTransaction) (string, error) {
	query := strings.TrimSpace(tx.Counterparty)
	if query == "" {
		query = strings.TrimSpace(tx.Description)
	}
	if query == "" {
		return "", nil
	}

	var industry string
	err := r.withRetry(ctx, func(callCtx context.Context) error {
		var callErr error
		industry, callErr = r.enricher.FactFind(callCtx, query)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("%w: fact finder: %s", domain.ErrEnrichmentUnavailable, err)
	}

	industry = strings.TrimSpace(industry)
	if strings.EqualFold(industry, "no match") {
		return "", nil
	}
	return industry, nil
}

// candidateAccounts builds the filtered account list shown to the mapper.
// Long-lived asset accounts are excluded below the configured amount
// threshold; system accounts and inactive accounts never appear.
func (r *enrichmentResolver) candidateAccounts(ctx context.Context, tx *domain.BankTransaction) ([]CandidateAccount, error) {
	accounts, err := r.accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	includeAssets := tx.AbsAmount().GreaterThanOrEqual(r.cfg.AssetAmountThreshold)

	candidates := make([]CandidateAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.SystemProtected {
			continue
		}
		switch a.Type {
		case domain.AccountTypeExpense, domain.AccountTypeRevenue:
		case domain.AccountTypeAsset:
			if !includeAssets {
				continue
			}
		default:
			continue
		}
		candidates = append(candidates, CandidateAccount{ID: a.ID, Code: a.Code, Name: a.Name})
	}

	return candidates, nil
}

// withRetry runs one collaborator call with a timeout and the bounded retry
// budget from config.
func (r *enrichmentResolver) withRetry(ctx context.Context, call func(context.Context) error) error {
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.EnrichmentTimeout)
		defer cancel()
		return call(callCtx)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(250*time.Millisecond), r.cfg.EnrichmentRetries),
		ctx,
	)

	return backoff.Retry(operation, policy)
}

// enrichmentLayer is pipeline layer five: external enrichment over the
// collaborator pair. Score is the extraction strategy's ceiling (65-90).
type enrichmentLayer struct {
	resolver *enrichmentResolver
}

func (l *enrichmentLayer) Name() string { return "enrichment" }

func (l *enrichmentLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	if !l.resolver.available() {
		return nil, nil
	}

	extraction, industry, ok, err := l.resolver.resolveAccount(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Collaborator answered but nothing extractable: no suggestion,
		// never a default account guess.
		return nil, nil
	}

	mode := domain.BookingModeDirect
	if !tx.Outgoing() {
		mode = domain.BookingModeRelation
	}

	return &domain.Suggestion{
		Score:       extraction.Score,
		Source:      l.Name(),
		Reason:      fmt.Sprintf("industry %q mapped via %s extraction", industry, extraction.Strategy),
		Mode:        mode,
		AccountID:   extraction.AccountID,
		ContactName: tx.Counterparty,
		Description: tx.Description,
	}, nil
}
