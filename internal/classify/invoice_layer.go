package classify

import (
	"context"
	"fmt"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// invoiceLayer matches a transaction against open invoices with an identical
// amount and a date inside the configured window. An exact hit is as certain
// as classification gets: score 100, relation mode, so settlement clears the
// invoice against the suspense posting.
type invoiceLayer struct {
	cfg      Config
	invoices InvoiceFinder
}

func (l *invoiceLayer) Name() string { return "invoice_match" }

func (l *invoiceLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	from := tx.Date.Add(-l.cfg.InvoiceMatchWindow)
	to := tx.Date.Add(l.cfg.InvoiceMatchWindow)

	open, err := l.invoices.ListOpenInWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	for _, invoice := range open {
		if !invoice.MatchesAmount(tx.Amount) {
			continue
		}

		return &domain.Suggestion{
			Score:       100,
			Source:      l.Name(),
			Reason:      fmt.Sprintf("amount matches open invoice %s", invoice.Number),
			Mode:        domain.BookingModeRelation,
			ContactID:   invoice.ContactID,
			Description: tx.Description,
		}, nil
	}

	return nil, nil
}
