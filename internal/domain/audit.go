package domain

import "time"

// AuditLog records one auditable event in the booking lifecycle. Every
// booking, settlement and learned correction produces a record so the path
// from bank statement line to ledger posting stays reconstructable.
type AuditLog struct {
	ID           string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       JSON
	CreatedAt    time.Time
}

// JSON is a type alias for JSON detail payloads.
type JSON map[string]any

// Auditable actions.
const (
	AuditActionClassify       = "transaction.classify"
	AuditActionBookDirect     = "transaction.book.direct"
	AuditActionBookRelation   = "transaction.book.relation"
	AuditActionSettle         = "transaction.settle"
	AuditActionRuleLearned    = "rule.learned"
	AuditActionRuleReinforced = "rule.reinforced"
	AuditActionCorrection     = "transaction.correction"
)
