package usecase

import (
	"context"
	"time"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// SettlementConfig names the accounts the clearing entry posts against.
type SettlementConfig struct {
	SuspenseAccountCode  string
	DebtorsAccountCode   string
	CreditorsAccountCode string
}

// SettlementUseCase clears a pending suspense posting against a matched
// invoice. The only legal transition is pending -> reconciled; settling a
// transaction in any other state reports a conflict without posting, which
// makes the operation idempotent.
type SettlementUseCase struct {
	cfg             SettlementConfig
	txManager       TransactionManager
	accountRepo     AccountRepository
	journalRepo     JournalRepository
	transactionRepo TransactionRepository
	invoiceRepo     InvoiceRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
	metrics         SettlementMetrics
	retrier         Retrier
}

// NewSettlementUseCase creates a new SettlementUseCase. Metrics and retrier
// may be nil.
func NewSettlementUseCase(
	cfg SettlementConfig,
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	transactionRepo TransactionRepository,
	invoiceRepo InvoiceRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics SettlementMetrics,
	retrier Retrier,
) *SettlementUseCase {
	return &SettlementUseCase{
		cfg:             cfg,
		txManager:       txManager,
		accountRepo:     accountRepo,
		journalRepo:     journalRepo,
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
		metrics:         metrics,
		retrier:         retrier,
	}
}

// Settle posts the clearing entry for a pending transaction matched to an
// invoice and marks both sides settled, all inside one database
// transaction. Amounts must clear the invoice exactly; partial matching is
// rejected, never silently mis-posted. A deadlocked or serialization-aborted
// transaction is rolled back and the body re-run through the retrier.
func (uc *SettlementUseCase) Settle(ctx context.Context, transactionID, invoiceID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	settle := func() error {
		var err error
		entry, err = uc.settleOnce(ctx, transactionID, invoiceID)
		return err
	}
	if uc.retrier == nil {
		if err := settle(); err != nil {
			return nil, err
		}
		return entry, nil
	}
	if err := uc.retrier.Retry(ctx, settle); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *SettlementUseCase) settleOnce(ctx context.Context, transactionID, invoiceID string) (*domain.JournalEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	bankTx, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if bankTx.Status != domain.TransactionStatusPending {
		if uc.metrics != nil {
			uc.metrics.CountSettlementConflict()
		}
		return nil, domain.ErrSettlementConflict
	}

	invoice, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Open() {
		return nil, domain.ErrInvoiceSettled
	}
	if !invoice.MatchesAmount(bankTx.Amount) {
		return nil, domain.ErrSplitSettlementUnsupported
	}

	suspense, err := uc.accountRepo.GetByCode(ctx, uc.cfg.SuspenseAccountCode)
	if err != nil {
		return nil, err
	}

	controlCode := uc.cfg.DebtorsAccountCode
	if invoice.Kind == domain.InvoiceKindPurchase {
		controlCode = uc.cfg.CreditorsAccountCode
	}
	control, err := uc.accountRepo.GetByCode(ctx, controlCode)
	if err != nil {
		return nil, err
	}

	entry := uc.buildClearingEntry(bankTx, invoice, suspense.ID, control.ID)
	if err := entry.Finalize(); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.CreateEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.invoiceRepo.MarkSettled(ctx, tx, invoice.ID, now); err != nil {
		return nil, err
	}
	if err := uc.transactionRepo.MarkReconciled(ctx, tx, bankTx.ID, entry.ID, now); err != nil {
		return nil, err
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       domain.AuditActionSettle,
		ResourceType: "bank_transaction",
		ResourceID:   bankTx.ID,
		Detail: domain.JSON{
			"invoice_id": invoice.ID,
			"entry_id":   entry.ID,
			"amount":     bankTx.Amount.String(),
		},
		CreatedAt: now,
	}
	if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CountSettlement()
	}

	return entry, nil
}

// buildClearingEntry mirrors the suspense line of the original booking:
// money received cleared a sales invoice, so the clearing entry debits
// suspense against the debtors control; money paid mirrors on the
// creditors side.
func (uc *SettlementUseCase) buildClearingEntry(bankTx *domain.BankTransaction, invoice *domain.Invoice, suspenseID, controlID string) *domain.JournalEntry {
	now := time.Now().UTC()
	entry := &domain.JournalEntry{
		ID:            uc.idGen.Generate(),
		Date:          now,
		Description:   "settlement of invoice " + invoice.Number,
		Status:        domain.EntryStatusDraft,
		Kind:          domain.EntryKindSettlement,
		TransactionID: &bankTx.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	amount := bankTx.AbsAmount()
	if bankTx.Outgoing() {
		entry.AddDebit(controlID, amount)
		entry.AddCredit(suspenseID, amount)
	} else {
		entry.AddDebit(suspenseID, amount)
		entry.AddCredit(controlID, amount)
	}

	for i := range entry.Lines {
		entry.Lines[i].ID = uc.idGen.Generate()
		entry.Lines[i].EntryID = entry.ID
	}

	return entry
}
