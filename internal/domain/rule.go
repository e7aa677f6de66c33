package domain

import (
	"strings"
	"time"
)

// MatchMode controls how a rule keyword is compared against transaction text.
type MatchMode string

const (
	MatchModeContains MatchMode = "contains"
	MatchModeExact    MatchMode = "exact"
)

// Rule priorities. Learned rules always sit below seeded system defaults so
// that a curated default cannot be shadowed by an accidental correction.
const (
	SystemRulePriority  = 100
	LearnedRulePriority = 10
)

// Rule maps a keyword to an account and/or contact. Rules are either seeded
// system defaults or learned from user corrections.
type Rule struct {
	ID         string
	Keyword    string
	Match      MatchMode
	AccountID  *string
	ContactID  *string
	Priority   int
	Active     bool
	System     bool
	UsageCount int64
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the minimal shape of a rule.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return ErrEmptyKeyword
	}
	return nil
}

// Matches reports whether the rule keyword matches the given text,
// case-insensitively, honoring the rule's match mode.
func (r *Rule) Matches(text string) bool {
	if text == "" {
		return false
	}
	keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
	text = strings.ToLower(strings.TrimSpace(text))
	if r.Match == MatchModeExact {
		return text == keyword
	}
	return strings.Contains(text, keyword)
}

// Mode derives the booking mode this rule implies: a rule carrying a contact
// routes the transaction into relation booking.
func (r *Rule) Mode() BookingMode {
	if r.ContactID != nil && *r.ContactID != "" {
		return BookingModeRelation
	}
	return BookingModeDirect
}

// NormalizeKeyword canonicalizes a keyword for storage and exact lookup.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.Join(strings.Fields(keyword), " "))
}
