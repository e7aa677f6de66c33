package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// keywordLayer is the last-resort heuristic layer. It always answers, so the
// user always has something to review, but every score sits below the
// auto-book floor.
type keywordLayer struct {
	accounts AccountFinder
}

type keywordHint struct {
	keyword     string
	accountCode string
	score       int
	reason      string
}

// Generic description keywords, checked in order. Scores 30-60.
var keywordHints = []keywordHint{
	{keyword: "huur", accountCode: "4100", score: 55, reason: "description mentions rent"},
	{keyword: "verzekering", accountCode: "4500", score: 55, reason: "description mentions insurance"},
	{keyword: "premie", accountCode: "4500", score: 45, reason: "description mentions a premium"},
	{keyword: "abonnement", accountCode: "4700", score: 45, reason: "description mentions a subscription"},
	{keyword: "benzine", accountCode: "4400", score: 55, reason: "description mentions fuel"},
	{keyword: "parkeren", accountCode: "4400", score: 50, reason: "description mentions parking"},
	{keyword: "kosten", accountCode: "6000", score: 40, reason: "description mentions charges"},
	{keyword: "factuur", accountCode: "8000", score: 50, reason: "description mentions an invoice"},
}

func (l *keywordLayer) Name() string { return "keyword" }

func (l *keywordLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	haystack := strings.ToLower(tx.Description + " " + tx.Counterparty)

	for _, hint := range keywordHints {
		if !strings.Contains(haystack, hint.keyword) {
			continue
		}
		if suggestion, err := l.suggest(ctx, tx, hint.accountCode, hint.score, hint.reason); err == nil && suggestion != nil {
			return suggestion, nil
		}
	}

	// Nothing matched: fall back on the transaction direction alone.
	if tx.Outgoing() {
		return l.fallback(ctx, tx, "4999", 30, "unrecognized outgoing payment")
	}
	return l.fallback(ctx, tx, "8000", 35, "unrecognized receipt")
}

func (l *keywordLayer) suggest(ctx context.Context, tx *domain.BankTransaction, code string, score int, reason string) (*domain.Suggestion, error) {
	account, err := l.accounts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.Suggestion{
		Score:       score,
		Source:      l.Name(),
		Reason:      reason,
		Mode:        domain.BookingModeDirect,
		AccountID:   account.ID,
		Description: tx.Description,
	}, nil
}

// fallback never returns nil even when the fallback account is missing from
// the chart; the suggestion then carries no account and the user picks one.
func (l *keywordLayer) fallback(ctx context.Context, tx *domain.BankTransaction, code string, score int, reason string) (*domain.Suggestion, error) {
	suggestion, err := l.suggest(ctx, tx, code, score, reason)
	if err != nil {
		return nil, err
	}
	if suggestion != nil {
		return suggestion, nil
	}

	return &domain.Suggestion{
		Score:       score,
		Source:      l.Name(),
		Reason:      fmt.Sprintf("%s, no fallback account configured", reason),
		Mode:        domain.BookingModeDirect,
		Description: tx.Description,
	}, nil
}
