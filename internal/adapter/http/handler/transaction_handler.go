package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/dto"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	IngestBatch(ctx context.Context, inputs []usecase.IngestInput) ([]*domain.BankTransaction, error)
	Get(ctx context.Context, id string) (*domain.BankTransaction, error)
	ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error)
	Confirm(ctx context.Context, transactionID string, input usecase.ConfirmInput) (*domain.JournalEntry, error)
}

// SettlementService defines the behavior needed for settling transactions.
type SettlementService interface {
	Settle(ctx context.Context, transactionID, invoiceID string) (*domain.JournalEntry, error)
}

// TransactionHandler handles bank transaction HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	settlementUC  SettlementService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, settlementUC SettlementService) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		settlementUC:  settlementUC,
	}
}

// Ingest stores a batch of normalized bank statement lines.
func (h *TransactionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Transactions) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch", "")
		return
	}

	txs, err := h.transactionUC.IngestBatch(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to ingest transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionsFromDomain(txs))
}

// Get retrieves a bank transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.transactionUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// List lists bank transactions by status.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.TransactionStatusUnmatched)
	}

	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 50),
		parseIntQuery(r, "offset", 0),
	)

	txs, err := h.transactionUC.ListByStatus(r.Context(), domain.TransactionStatus(status), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// Confirm books a transaction with the user's accepted or corrected
// decision.
func (h *TransactionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.ConfirmTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.transactionUC.Confirm(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to confirm transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Settle clears a pending transaction against an open invoice.
func (h *TransactionHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.SettleTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.InvoiceID == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	entry, err := h.settlementUC.Settle(r.Context(), id, req.InvoiceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
