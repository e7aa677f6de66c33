package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// RuleUseCase converts confirmed classifications into durable rules and
// reinforces the rules that keep being right. Learning is only invoked for
// transactions a user actually confirmed or corrected; unattended bookings
// above the threshold do not re-learn on every run.
type RuleUseCase struct {
	ruleRepo  RuleRepository
	auditRepo AuditRepository
	idGen     IDGenerator
	metrics   RuleMetrics
}

// NewRuleUseCase creates a new RuleUseCase. Metrics may be nil.
func NewRuleUseCase(ruleRepo RuleRepository, auditRepo AuditRepository, idGen IDGenerator, metrics RuleMetrics) *RuleUseCase {
	return &RuleUseCase{ruleRepo: ruleRepo, auditRepo: auditRepo, idGen: idGen, metrics: metrics}
}

// LearnResult reports whether Learn reinforced an existing rule or created
// a new one.
type LearnResult struct {
	Rule    *domain.Rule
	Created bool
}

// Learn extracts a keyword from the transaction (counterparty name first,
// description second, never both) and either reinforces the existing rule
// for that keyword or creates a new learned rule below all system defaults.
func (uc *RuleUseCase) Learn(ctx context.Context, bankTx *domain.BankTransaction, mode domain.BookingMode, accountID string, contactID *string) (*LearnResult, error) {
	keyword := domain.NormalizeKeyword(bankTx.Counterparty)
	if keyword == "" {
		keyword = domain.NormalizeKeyword(bankTx.Description)
	}
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	now := time.Now().UTC()

	existing, err := uc.ruleRepo.GetByKeyword(ctx, keyword)
	switch {
	case err == nil:
		if err := uc.ruleRepo.IncrementUsage(ctx, existing.ID, now); err != nil {
			return nil, err
		}
		existing.UsageCount++
		existing.LastUsedAt = &now

		uc.audit(ctx, domain.AuditActionRuleReinforced, existing.ID, domain.JSON{
			"keyword":     keyword,
			"usage_count": existing.UsageCount,
		})
		if uc.metrics != nil {
			uc.metrics.CountRuleReinforced()
		}
		return &LearnResult{Rule: existing}, nil

	case errors.Is(err, domain.ErrRuleNotFound):
		// fall through to create

	default:
		return nil, err
	}

	rule := &domain.Rule{
		ID:         uc.idGen.Generate(),
		Keyword:    keyword,
		Match:      domain.MatchModeContains,
		Priority:   domain.LearnedRulePriority,
		Active:     true,
		System:     false,
		UsageCount: 1,
		LastUsedAt: &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if accountID != "" {
		rule.AccountID = &accountID
	}
	if mode == domain.BookingModeRelation && contactID != nil && *contactID != "" {
		rule.ContactID = contactID
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionRuleLearned, rule.ID, domain.JSON{
		"keyword":    keyword,
		"account_id": accountID,
		"mode":       string(mode),
	})
	if uc.metrics != nil {
		uc.metrics.CountRuleLearned()
	}

	return &LearnResult{Rule: rule, Created: true}, nil
}

// ListRules lists rules with pagination.
func (uc *RuleUseCase) ListRules(ctx context.Context, limit, offset int) ([]*domain.Rule, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.ruleRepo.List(ctx, limit, offset)
}

// audit writes a best-effort audit record. Rule bookkeeping must not fail a
// confirmed booking, so audit errors are swallowed here.
func (uc *RuleUseCase) audit(ctx context.Context, action, resourceID string, detail domain.JSON) {
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       action,
		ResourceType: "rule",
		ResourceID:   resourceID,
		Detail:       detail,
		CreatedAt:    time.Now().UTC(),
	})
}
