package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/handler"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/middleware"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler    *handler.TransactionHandler
	ClassificationHandler *handler.ClassificationHandler
	AccountHandler        *handler.AccountHandler
	ContactHandler        *handler.ContactHandler
	RuleHandler           *handler.RuleHandler
	LedgerHandler         *handler.LedgerHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Bank transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Ingest)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/classify", cfg.ClassificationHandler.ClassifyOne)
			r.Post("/{id}/confirm", cfg.TransactionHandler.Confirm)
			r.Post("/{id}/settle", cfg.TransactionHandler.Settle)
			r.Get("/{id}/entries", cfg.LedgerHandler.ListByTransaction)
		})

		// Classification runs
		r.Post("/classify/run", cfg.ClassificationHandler.RunBatch)

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Deactivate)
		})

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", cfg.ContactHandler.Create)
			r.Get("/", cfg.ContactHandler.List)
			r.Get("/{id}", cfg.ContactHandler.Get)
		})

		// Rules
		r.Get("/rules", cfg.RuleHandler.List)

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.CreateInvoice)
			r.Get("/{id}", cfg.LedgerHandler.GetInvoice)
		})

		// Journal
		r.Get("/entries/{id}", cfg.LedgerHandler.GetEntry)
		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}
