package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// contactLayer fuzzy-matches the counterparty name against known contacts.
// A known counterparty is a certain relation match (score 100) even when the
// account still has to be picked: with a default account the account comes
// for free, without one the enrichment collaborator is asked, and if that
// fails too the account is left empty for the user to fill in. The
// transaction still routes to relation mode either way.
type contactLayer struct {
	contacts ContactFinder
	accounts AccountFinder
	resolver *enrichmentResolver
}

func (l *contactLayer) Name() string { return "contact" }

func (l *contactLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	counterparty := strings.ToLower(strings.TrimSpace(tx.Counterparty))
	if counterparty == "" {
		return nil, nil
	}

	contacts, err := l.contacts.List(ctx)
	if err != nil {
		return nil, err
	}

	var match *domain.Contact
	for _, contact := range contacts {
		name := strings.ToLower(strings.TrimSpace(contact.Name))
		if name == "" {
			continue
		}
		if strings.Contains(counterparty, name) || strings.Contains(name, counterparty) {
			match = contact
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	suggestion := &domain.Suggestion{
		Score:       100,
		Source:      l.Name(),
		Reason:      fmt.Sprintf("counterparty matches contact %q", match.Name),
		Mode:        domain.BookingModeRelation,
		ContactID:   match.ID,
		ContactName: match.Name,
		Description: tx.Description,
	}

	if match.HasDefaultAccount() {
		suggestion.AccountID = *match.DefaultAccountID
		suggestion.Reason += " (default account)"
		return suggestion, nil
	}

	if l.resolver.available() {
		extraction, _, ok, err := l.resolver.resolveAccount(ctx, tx)
		if err != nil && !errors.Is(err, domain.ErrEnrichmentUnavailable) {
			return nil, err
		}
		if ok {
			suggestion.AccountID = extraction.AccountID
			suggestion.Reason += fmt.Sprintf(", account via %s extraction", extraction.Strategy)
		}
	}

	// Account may still be empty here: the contact match stands and the
	// user picks the account during review.
	return suggestion, nil
}
