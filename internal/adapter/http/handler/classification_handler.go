package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/dto"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// ClassificationService defines the behavior needed by
// ClassificationHandler.
type ClassificationService interface {
	RunBatch(ctx context.Context) (*usecase.BatchReport, error)
	ClassifyOne(ctx context.Context, transactionID string) (*domain.Suggestion, error)
}

// ClassificationHandler handles classification HTTP requests.
type ClassificationHandler struct {
	classificationUC ClassificationService
}

// NewClassificationHandler creates a new ClassificationHandler.
func NewClassificationHandler(classificationUC ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{classificationUC: classificationUC}
}

// RunBatch classifies all unmatched transactions and auto-books the ones
// above the booking threshold.
func (h *ClassificationHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	report, err := h.classificationUC.RunBatch(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "classification run failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchReportFromUseCase(report))
}

// ClassifyOne re-runs the pipeline for a single transaction and stores the
// fresh suggestion without booking anything.
func (h *ClassificationHandler) ClassifyOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	suggestion, err := h.classificationUC.ClassifyOne(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "classification failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SuggestionFromDomain(suggestion))
}
