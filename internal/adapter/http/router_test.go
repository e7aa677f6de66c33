package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/handler"
	apimiddleware "github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/middleware"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"transactions":[{"amount":"-45.20","description":"KPN","date":"2025-03-01T00:00:00Z"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/",
		"POST /api/v1/transactions/{id}/classify",
		"POST /api/v1/transactions/{id}/confirm",
		"POST /api/v1/transactions/{id}/settle",
		"GET /api/v1/transactions/{id}/entries",
		"POST /api/v1/classify/run",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"POST /api/v1/contacts/",
		"GET /api/v1/rules",
		"POST /api/v1/invoices/",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		TransactionHandler:    handler.NewTransactionHandler(&stubTransactionService{}, &stubSettlementService{}),
		ClassificationHandler: handler.NewClassificationHandler(&stubClassificationService{}),
		AccountHandler:        handler.NewAccountHandler(&stubAccountService{}),
		ContactHandler:        handler.NewContactHandler(&stubContactService{}),
		RuleHandler:           handler.NewRuleHandler(&stubRuleService{}),
		LedgerHandler:         handler.NewLedgerHandler(&stubLedgerService{}),
		HealthHandler:         &handler.HealthHandler{},
		Logger:                zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubTransactionService struct{}

func (stubTransactionService) IngestBatch(ctx context.Context, inputs []usecase.IngestInput) ([]*domain.BankTransaction, error) {
	return []*domain.BankTransaction{}, nil
}

func (stubTransactionService) Get(ctx context.Context, id string) (*domain.BankTransaction, error) {
	return &domain.BankTransaction{ID: id}, nil
}

func (stubTransactionService) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error) {
	return []*domain.BankTransaction{}, nil
}

func (stubTransactionService) Confirm(ctx context.Context, transactionID string, input usecase.ConfirmInput) (*domain.JournalEntry, error) {
	return &domain.JournalEntry{ID: "entry"}, nil
}

type stubSettlementService struct{}

func (stubSettlementService) Settle(ctx context.Context, transactionID, invoiceID string) (*domain.JournalEntry, error) {
	return &domain.JournalEntry{ID: "entry"}, nil
}

type stubClassificationService struct{}

func (stubClassificationService) RunBatch(ctx context.Context) (*usecase.BatchReport, error) {
	return &usecase.BatchReport{}, nil
}

func (stubClassificationService) ClassifyOne(ctx context.Context, transactionID string) (*domain.Suggestion, error) {
	return &domain.Suggestion{Score: 90}, nil
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) DeactivateAccount(ctx context.Context, id string) error {
	return nil
}

type stubContactService struct{}

func (stubContactService) CreateContact(ctx context.Context, input usecase.CreateContactInput) (*domain.Contact, error) {
	return &domain.Contact{ID: "con"}, nil
}

func (stubContactService) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	return &domain.Contact{ID: id}, nil
}

func (stubContactService) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	return []*domain.Contact{}, nil
}

type stubRuleService struct{}

func (stubRuleService) ListRules(ctx context.Context, limit, offset int) ([]*domain.Rule, error) {
	return []*domain.Rule{}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return &domain.JournalEntry{ID: id}, nil
}

func (stubLedgerService) EntriesForTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	return []*domain.JournalEntry{}, nil
}

func (stubLedgerService) CheckConsistency(ctx context.Context) (*usecase.ConsistencyResult, error) {
	return &usecase.ConsistencyResult{Consistent: true}, nil
}

func (stubLedgerService) CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error) {
	return &domain.Invoice{ID: "inv"}, nil
}

func (stubLedgerService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return &domain.Invoice{ID: id}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
