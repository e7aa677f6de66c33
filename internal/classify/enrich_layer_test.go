package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

func enrichmentAccounts() *stubAccountFinder {
	return &stubAccountFinder{active: []*domain.Account{
		{ID: "acc-materials", Code: "4800", Name: "Materialen en gereedschap", Type: domain.AccountTypeExpense, Active: true},
		{ID: "acc-revenue", Code: "8000", Name: "Omzet", Type: domain.AccountTypeRevenue, Active: true},
		{ID: "acc-inventory", Code: "0150", Name: "Inventaris", Type: domain.AccountTypeAsset, Active: true},
		{ID: "acc-bank", Code: "1100", Name: "Bank", Type: domain.AccountTypeAsset, Active: true, SystemProtected: true},
		{ID: "acc-creditors", Code: "1600", Name: "Crediteuren", Type: domain.AccountTypeLiability, Active: true},
	}}
}

func TestEnrichmentLayer_Classify(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnrichmentRetries = 0

	enricher := &stubEnricher{
		factResponse: "hardware store",
		mapResponse:  `{"account_id": "acc-materials"}`,
	}
	resolver := newEnrichmentResolver(cfg, enrichmentAccounts(), enricher, zerolog.Nop())
	layer := &enrichmentLayer{resolver: resolver}

	suggestion, err := layer.Classify(context.Background(), &domain.BankTransaction{
		ID:           "tx-1",
		Counterparty: "BOUWBEDRIJF PIETERSE",
		Description:  "Betaling materialen",
		Amount:       decimal.NewFromFloat(-230.50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion == nil {
		t.Fatal("expected a suggestion")
	}
	if suggestion.AccountID != "acc-materials" {
		t.Errorf("account = %s, want acc-materials", suggestion.AccountID)
	}
	if suggestion.Score != 90 {
		t.Errorf("score = %d, want the structured-extraction ceiling 90", suggestion.Score)
	}
	if suggestion.Mode != domain.BookingModeDirect {
		t.Errorf("mode = %s, want direct for outgoing money", suggestion.Mode)
	}
}

func TestEnrichmentLayer_NoMatchFromFactFinder(t *testing.T) {
	enricher := &stubEnricher{factResponse: "No Match"}
	resolver := newEnrichmentResolver(DefaultConfig(), enrichmentAccounts(), enricher, zerolog.Nop())
	layer := &enrichmentLayer{resolver: resolver}

	suggestion, err := layer.Classify(context.Background(), &domain.BankTransaction{
		ID:           "tx-1",
		Counterparty: "ONBEKEND BV",
		Amount:       decimal.NewFromFloat(-50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion != nil {
		t.Fatalf("expected no suggestion on a fact-finder miss, got %+v", suggestion)
	}
	if enricher.mapCalls != 0 {
		t.Error("category mapper must not be called after a fact-finder miss")
	}
}

func TestEnrichmentLayer_UnextractableResponse(t *testing.T) {
	enricher := &stubEnricher{
		factResponse: "florist",
		mapResponse:  "I am not sure which account fits best here.",
	}
	resolver := newEnrichmentResolver(DefaultConfig(), enrichmentAccounts(), enricher, zerolog.Nop())
	layer := &enrichmentLayer{resolver: resolver}

	suggestion, err := layer.Classify(context.Background(), &domain.BankTransaction{
		ID:           "tx-1",
		Counterparty: "BLOEMIST JANSEN",
		Amount:       decimal.NewFromFloat(-45.20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestion != nil {
		t.Fatalf("an unextractable mapper answer must never yield a default guess, got %+v", suggestion)
	}
}

func TestEnrichmentLayer_CollaboratorFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnrichmentRetries = 0

	enricher := &stubEnricher{factErr: errors.New("upstream 503")}
	resolver := newEnrichmentResolver(cfg, enrichmentAccounts(), enricher, zerolog.Nop())
	layer := &enrichmentLayer{resolver: resolver}

	_, err := layer.Classify(context.Background(), &domain.BankTransaction{
		ID:           "tx-1",
		Counterparty: "BLOEMIST JANSEN",
		Amount:       decimal.NewFromFloat(-45.20),
	})
	if !errors.Is(err, domain.ErrEnrichmentUnavailable) {
		t.Fatalf("expected ErrEnrichmentUnavailable, got %v", err)
	}
}

func TestEnrichmentResolver_CandidateFiltering(t *testing.T) {
	resolver := newEnrichmentResolver(DefaultConfig(), enrichmentAccounts(), &stubEnricher{}, zerolog.Nop())

	small, err := resolver.candidateAccounts(context.Background(), &domain.BankTransaction{
		Amount: decimal.NewFromFloat(-45.20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range small {
		if c.ID == "acc-inventory" {
			t.Error("asset account must be excluded below the amount threshold")
		}
		if c.ID == "acc-bank" {
			t.Error("system account must never be a candidate")
		}
		if c.ID == "acc-creditors" {
			t.Error("liability account must never be a candidate")
		}
	}
	if len(small) != 2 {
		t.Errorf("candidate count = %d, want 2", len(small))
	}

	large, err := resolver.candidateAccounts(context.Background(), &domain.BankTransaction{
		Amount: decimal.NewFromFloat(-1200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, c := range large {
		if c.ID == "acc-inventory" {
			found = true
		}
	}
	if !found {
		t.Error("asset account must be a candidate at or above the amount threshold")
	}
}
