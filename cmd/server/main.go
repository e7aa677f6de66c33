package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/handler"
	postgresRepo "github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/repository/postgres"
	redisRepo "github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/repository/redis"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/classify"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/enrichment"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/infrastructure/config"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/infrastructure/logger"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/infrastructure/metrics"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/infrastructure/postgres"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/infrastructure/redis"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	contactRepo := postgresRepo.NewContactRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	ruleRepo := postgresRepo.NewRuleRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Classification pipeline
	assetThreshold, err := decimal.NewFromString(cfg.AssetAmountThreshold)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.AssetAmountThreshold).Msg("invalid asset amount threshold")
	}

	pipelineCfg := classify.Config{
		AutoBookThreshold:    cfg.AutoBookThreshold,
		SuggestThreshold:     cfg.SuggestThreshold,
		AssetAmountThreshold: assetThreshold,
		InvoiceMatchWindow:   time.Duration(cfg.InvoiceMatchWindowDays) * 24 * time.Hour,
		EnrichmentTimeout:    cfg.EnrichmentTimeout,
		EnrichmentRetries:    cfg.EnrichmentRetries,
	}

	var enricher classify.Enricher
	if cfg.FactFinderURL != "" && cfg.CategoryMapperURL != "" {
		client := enrichment.NewHTTPClient(cfg.FactFinderURL, cfg.CategoryMapperURL, appMetrics, appLogger)
		enricher = enrichment.NewCachedEnricher(client, cache, cfg.EnrichmentCacheTTL)
		appLogger.Info().Msg("enrichment collaborators enabled")
	} else {
		appLogger.Info().Msg("enrichment collaborators disabled")
	}

	pipeline := classify.NewPipeline(pipelineCfg, invoiceRepo, ruleRepo, contactRepo, accountRepo, enricher, appLogger)

	// Initialize use cases
	bookingUC := usecase.NewBookingUseCase(
		usecase.BookingConfig{
			BankAccountCode:     cfg.BankAccountCode,
			SuspenseAccountCode: cfg.SuspenseAccountCode,
		},
		txManager, accountRepo, contactRepo, journalRepo, transactionRepo, auditRepo, idGen, retrier,
	)
	settlementUC := usecase.NewSettlementUseCase(
		usecase.SettlementConfig{
			SuspenseAccountCode:  cfg.SuspenseAccountCode,
			DebtorsAccountCode:   cfg.DebtorsAccountCode,
			CreditorsAccountCode: cfg.CreditorsAccountCode,
		},
		txManager, accountRepo, journalRepo, transactionRepo, invoiceRepo, auditRepo, idGen, appMetrics, retrier,
	)
	ruleUC := usecase.NewRuleUseCase(ruleRepo, auditRepo, idGen, appMetrics)
	classificationUC := usecase.NewClassificationUseCase(
		pipeline, transactionRepo, bookingUC, appMetrics, cfg.ClassifyWorkers, appLogger,
	)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, bookingUC, ruleUC, auditRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	contactUC := usecase.NewContactUseCase(contactRepo, accountRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(journalRepo, invoiceRepo, idGen)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionUC, settlementUC)
	classificationHandler := handler.NewClassificationHandler(classificationUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	contactHandler := handler.NewContactHandler(contactUC)
	ruleHandler := handler.NewRuleHandler(ruleUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler:    transactionHandler,
		ClassificationHandler: classificationHandler,
		AccountHandler:        accountHandler,
		ContactHandler:        contactHandler,
		RuleHandler:           ruleHandler,
		LedgerHandler:         ledgerHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		Logger:                appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
