package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// vendorLayer consults the static vendor knowledge base. Vendor hits book
// direct: the merchant identifies the cost category and no invoice match is
// expected.
type vendorLayer struct {
	accounts AccountFinder
	table    *VendorTable
}

func (l *vendorLayer) Name() string { return "vendor" }

func (l *vendorLayer) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	entry, found := l.table.Match(tx.Description)
	if !found {
		entry, found = l.table.Match(tx.Counterparty)
	}
	if !found {
		return nil, nil
	}

	account, err := l.accounts.GetByCode(ctx, entry.AccountCode)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}

	reason := fmt.Sprintf("vendor keyword %q (%s)", entry.Keyword, entry.Category)
	if entry.Category == CategoryCashWithdrawal {
		reason = fmt.Sprintf("cash withdrawal %q books to owner private", entry.Keyword)
	}

	return &domain.Suggestion{
		Score:       entry.Confidence,
		Source:      l.Name(),
		Reason:      reason,
		Mode:        domain.BookingModeDirect,
		AccountID:   account.ID,
		Description: tx.Description,
	}, nil
}
