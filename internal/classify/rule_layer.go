package classify

import (
	"context"
	"fmt"
	"sort"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// ruleLayer matches active rules against the transaction description and
// counterparty name. Rules are evaluated by priority descending, longer
// keyword winning ties, so the most specific rule fires first.
type ruleLayer struct {
	rules RuleFinder
}

func (l *ruleLayer) Name() string { return "rule" }

func (l *ruleLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	rules, err := l.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return len(rules[i].Keyword) > len(rules[j].Keyword)
	})

	for _, rule := range rules {
		if !rule.Matches(tx.Description) && !rule.Matches(tx.Counterparty) {
			continue
		}

		score := 95
		if rule.Match == domain.MatchModeExact {
			score = 100
		}

		suggestion := &domain.Suggestion{
			Score:       score,
			Source:      l.Name(),
			Reason:      fmt.Sprintf("matched rule %q", rule.Keyword),
			Mode:        rule.Mode(),
			Description: tx.Description,
		}
		if rule.AccountID != nil {
			suggestion.AccountID = *rule.AccountID
		}
		if rule.ContactID != nil {
			suggestion.ContactID = *rule.ContactID
		}

		return suggestion, nil
	}

	return nil, nil
}
