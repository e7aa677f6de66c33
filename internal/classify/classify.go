// Package classify implements the layered classification pipeline that turns
// a bank transaction into a scored booking suggestion. Layers are evaluated
// strictly in priority order and the first non-nil suggestion wins; a layer
// failure is absorbed by falling through to the next layer.
package classify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// Config carries the decision-policy knobs of the pipeline. All cutoffs are
// configuration, not constants, so tests and deployments can vary them.
type Config struct {
	// AutoBookThreshold is the minimum score for unattended booking.
	AutoBookThreshold int
	// SuggestThreshold is the minimum score for a one-click suggestion.
	SuggestThreshold int
	// AssetAmountThreshold excludes long-lived asset accounts from the
	// category-mapper candidate list for amounts below it.
	AssetAmountThreshold decimal.Decimal
	// InvoiceMatchWindow bounds how far an open invoice date may sit from
	// the transaction date for an exact-amount match.
	InvoiceMatchWindow time.Duration
	// EnrichmentTimeout bounds a single collaborator round trip.
	EnrichmentTimeout time.Duration
	// EnrichmentRetries is the bounded retry budget per collaborator call.
	EnrichmentRetries uint64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		AutoBookThreshold:    80,
		SuggestThreshold:     70,
		AssetAmountThreshold: decimal.NewFromInt(450),
		InvoiceMatchWindow:   14 * 24 * time.Hour,
		EnrichmentTimeout:    10 * time.Second,
		EnrichmentRetries:    1,
	}
}

// Layer is one classification strategy. Classify returns nil when the layer
// has nothing to say about the transaction; errors are treated the same as
// nil by the pipeline, after logging.
type Layer interface {
	Name() string
	Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error)
}

// InvoiceFinder looks up open invoices for the invoice-match layer.
type InvoiceFinder interface {
	ListOpenInWindow(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error)
}

// RuleFinder looks up active classification rules.
type RuleFinder interface {
	ListActive(ctx context.Context) ([]*domain.Rule, error)
}

// ContactFinder lists known contacts for the fuzzy counterparty match.
type ContactFinder interface {
	List(ctx context.Context) ([]*domain.Contact, error)
}

// AccountFinder resolves accounts for vendor and enrichment layers.
type AccountFinder interface {
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
}

// CandidateAccount is the narrow account view handed to the category mapper.
type CandidateAccount struct {
	ID   string
	Code string
	Name string
}

// Enricher is the contract with the two external collaborators. FactFind
// returns a free-text industry guess; MapCategory returns free text from
// which an account reference must be extracted, never trusted as structured
// data. Both must honor context cancellation.
type Enricher interface {
	FactFind(ctx context.Context, query string) (string, error)
	MapCategory(ctx context.Context, industry string, amount decimal.Decimal, candidates []CandidateAccount) (string, error)
}

// Pipeline evaluates layers in order and returns the first match. It is
// stateless per transaction and safe for concurrent use.
type Pipeline struct {
	cfg    Config
	layers []Layer
	logger zerolog.Logger
}

// NewPipeline builds the standard six-layer pipeline. The enricher may be
// nil, in which case the enrichment layer is skipped entirely and the
// contact layer degrades to suggestions without an account.
func NewPipeline(
	cfg Config,
	invoices InvoiceFinder,
	rules RuleFinder,
	contacts ContactFinder,
	accounts AccountFinder,
	enricher Enricher,
	logger zerolog.Logger,
) *Pipeline {
	resolver := newEnrichmentResolver(cfg, accounts, enricher, logger)

	layers := []Layer{
		&invoiceLayer{cfg: cfg, invoices: invoices},
		&ruleLayer{rules: rules},
		&contactLayer{contacts: contacts, accounts: accounts, resolver: resolver},
		&vendorLayer{accounts: accounts, table: DefaultVendorTable()},
	}
	if enricher != nil {
		layers = append(layers, &enrichmentLayer{resolver: resolver})
	}
	layers = append(layers, &keywordLayer{accounts: accounts})

	return &Pipeline{cfg: cfg, layers: layers, logger: logger}
}

// NewPipelineWithLayers builds a pipeline from an explicit layer list.
func NewPipelineWithLayers(cfg Config, logger zerolog.Logger, layers ...Layer) *Pipeline {
	return &Pipeline{cfg: cfg, layers: layers, logger: logger}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Classify runs the layers in order and returns the first non-nil
// suggestion. The terminal keyword layer always answers, so the result is
// nil only when the context is cancelled.
func (p *Pipeline) Classify(ctx context.Context, tx *domain.BankTransaction) (*domain.Suggestion, error) {
	for _, layer := range p.layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		suggestion, err := layer.Classify(ctx, tx)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("layer", layer.Name()).
				Str("transaction_id", tx.ID).
				Msg("classification layer failed, falling through")
			continue
		}

		if suggestion != nil {
			return suggestion, nil
		}
	}

	return nil, nil
}
