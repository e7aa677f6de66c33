package handler

import (
	"context"
	"net/http"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/dto"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// RuleService defines the behavior needed by RuleHandler.
type RuleService interface {
	ListRules(ctx context.Context, limit, offset int) ([]*domain.Rule, error)
}

// RuleHandler handles classification rule HTTP requests. Rules are created
// by seeding and by learning from confirmations, never directly.
type RuleHandler struct {
	ruleUC RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleUC RuleService) *RuleHandler {
	return &RuleHandler{ruleUC: ruleUC}
}

// List lists rules, most recently created first.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 50),
		parseIntQuery(r, "offset", 0),
	)

	rules, err := h.ruleUC.ListRules(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RulesFromDomain(rules))
}
