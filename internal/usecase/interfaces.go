package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

// ContactRepository defines data access for contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	CreateTx(ctx context.Context, tx Transaction, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]*domain.Contact, error)
}

// JournalRepository defines data access for journal entries and their lines.
// CreateEntry persists the entry and all lines inside the given transaction.
type JournalRepository interface {
	CreateEntry(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error)
	FinalTotals(ctx context.Context) (totalDebit, totalCredit decimal.Decimal, err error)
}

// TransactionRepository defines data access for bank transactions.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, txs []*domain.BankTransaction) error
	GetByID(ctx context.Context, id string) (*domain.BankTransaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.BankTransaction, error)
	ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error)
	UpdateSuggestion(ctx context.Context, id string, suggestion *domain.Suggestion, updatedAt time.Time) error
	MarkBooked(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, entryID string, updatedAt time.Time) error
	MarkReconciled(ctx context.Context, tx Transaction, id string, settlementEntryID string, updatedAt time.Time) error
}

// RuleRepository defines data access for classification rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.Rule) error
	GetByKeyword(ctx context.Context, keyword string) (*domain.Rule, error)
	ListActive(ctx context.Context) ([]*domain.Rule, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Rule, error)
	IncrementUsage(ctx context.Context, id string, usedAt time.Time) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	ListOpenInWindow(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error)
	MarkSettled(ctx context.Context, tx Transaction, id string, settledAt time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation that failed on a transient database error,
// such as a deadlock or serialization failure. The whole transaction body is
// retried because an aborted transaction cannot be resumed.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// ClassificationMetrics receives classification observations. The concrete
// implementation lives in infrastructure/metrics; a no-op is fine in tests.
type ClassificationMetrics interface {
	ObserveConfidence(score int)
	CountLayerHit(layer string)
	CountAutoBook(mode domain.BookingMode)
	CountBookingError()
}

// SettlementMetrics receives settlement observations.
type SettlementMetrics interface {
	CountSettlement()
	CountSettlementConflict()
}

// RuleMetrics receives rule learning observations.
type RuleMetrics interface {
	CountRuleLearned()
	CountRuleReinforced()
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
