package domain

// BookingMode selects how an accepted suggestion is posted.
//
// Direct books straight against a revenue or expense account and is terminal.
// Relation books against the suspense account and defers the final
// categorization until an invoice match settles it.
type BookingMode string

const (
	BookingModeDirect   BookingMode = "direct"
	BookingModeRelation BookingMode = "relation"
)

// Suggestion is the scored outcome of one classification run. It is
// transient: it travels with the bank transaction as a payload and is never
// persisted as its own aggregate.
type Suggestion struct {
	Score       int
	Source      string
	Reason      string
	Mode        BookingMode
	AccountID   string
	ContactID   string
	ContactName string
	Description string
}

// HasAccount reports whether the suggestion proposes a concrete account.
func (s *Suggestion) HasAccount() bool {
	return s != nil && s.AccountID != ""
}
