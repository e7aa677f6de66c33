package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// TransactionResponse represents a bank transaction in API responses.
type TransactionResponse struct {
	ID                string              `json:"id"`
	Date              time.Time           `json:"date"`
	Amount            decimal.Decimal     `json:"amount"`
	Description       string              `json:"description"`
	Counterparty      string              `json:"counterparty"`
	Status            string              `json:"status"`
	Confidence        *int                `json:"confidence,omitempty"`
	Suggestion        *SuggestionResponse `json:"suggestion,omitempty"`
	JournalEntryID    *string             `json:"journal_entry_id,omitempty"`
	SettlementEntryID *string             `json:"settlement_entry_id,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// SuggestionResponse represents a classification suggestion.
type SuggestionResponse struct {
	Score       int    `json:"score"`
	Source      string `json:"source"`
	Reason      string `json:"reason"`
	Mode        string `json:"mode"`
	AccountID   string `json:"account_id,omitempty"`
	ContactID   string `json:"contact_id,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
}

// TransactionFromDomain converts a domain bank transaction to a response.
func TransactionFromDomain(t *domain.BankTransaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:                t.ID,
		Date:              t.Date,
		Amount:            t.Amount,
		Description:       t.Description,
		Counterparty:      t.Counterparty,
		Status:            string(t.Status),
		Confidence:        t.Confidence,
		JournalEntryID:    t.JournalEntryID,
		SettlementEntryID: t.SettlementEntryID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}

	if t.Suggestion != nil {
		resp.Suggestion = SuggestionFromDomain(t.Suggestion)
	}

	return resp
}

// TransactionsFromDomain converts domain bank transactions to responses.
func TransactionsFromDomain(txs []*domain.BankTransaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// SuggestionFromDomain converts a domain suggestion to a response.
func SuggestionFromDomain(s *domain.Suggestion) *SuggestionResponse {
	return &SuggestionResponse{
		Score:       s.Score,
		Source:      s.Source,
		Reason:      s.Reason,
		Mode:        string(s.Mode),
		AccountID:   s.AccountID,
		ContactID:   s.ContactID,
		ContactName: s.ContactName,
	}
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	Kind          string          `json:"kind"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Lines         []LineResponse  `json:"lines"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LineResponse represents a journal line.
type LineResponse struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryFromDomain converts a domain journal entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}

	return &EntryResponse{
		ID:            e.ID,
		Date:          e.Date,
		Description:   e.Description,
		Status:        string(e.Status),
		Kind:          e.Kind,
		TransactionID: e.TransactionID,
		Lines:         lines,
		TotalDebit:    e.TotalDebit(),
		TotalCredit:   e.TotalCredit(),
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain journal entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Active          bool      `json:"active"`
	SystemProtected bool      `json:"system_protected"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID,
		Code:            a.Code,
		Name:            a.Name,
		Type:            string(a.Type),
		Active:          a.Active,
		SystemProtected: a.SystemProtected,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	DefaultAccountID *string   `json:"default_account_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ContactFromDomain converts a domain contact to a response.
func ContactFromDomain(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:               c.ID,
		Name:             c.Name,
		Role:             string(c.Role),
		DefaultAccountID: c.DefaultAccountID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ContactsFromDomain converts domain contacts to responses.
func ContactsFromDomain(contacts []*domain.Contact) []*ContactResponse {
	result := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		result[i] = ContactFromDomain(c)
	}
	return result
}

// RuleResponse represents a classification rule in API responses.
type RuleResponse struct {
	ID         string     `json:"id"`
	Keyword    string     `json:"keyword"`
	Match      string     `json:"match"`
	AccountID  *string    `json:"account_id,omitempty"`
	ContactID  *string    `json:"contact_id,omitempty"`
	Priority   int        `json:"priority"`
	Active     bool       `json:"active"`
	System     bool       `json:"system"`
	UsageCount int64      `json:"usage_count"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RuleFromDomain converts a domain rule to a response.
func RuleFromDomain(r *domain.Rule) *RuleResponse {
	return &RuleResponse{
		ID:         r.ID,
		Keyword:    r.Keyword,
		Match:      string(r.Match),
		AccountID:  r.AccountID,
		ContactID:  r.ContactID,
		Priority:   r.Priority,
		Active:     r.Active,
		System:     r.System,
		UsageCount: r.UsageCount,
		LastUsedAt: r.LastUsedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// RulesFromDomain converts domain rules to responses.
func RulesFromDomain(rules []*domain.Rule) []*RuleResponse {
	result := make([]*RuleResponse, len(rules))
	for i, r := range rules {
		result[i] = RuleFromDomain(r)
	}
	return result
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	ContactID string          `json:"contact_id"`
	Kind      string          `json:"kind"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// InvoiceFromDomain converts a domain invoice to a response.
func InvoiceFromDomain(i *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:        i.ID,
		Number:    i.Number,
		ContactID: i.ContactID,
		Kind:      string(i.Kind),
		Date:      i.Date,
		Amount:    i.Amount,
		Status:    string(i.Status),
		SettledAt: i.SettledAt,
		CreatedAt: i.CreatedAt,
	}
}

// BatchReportResponse represents the outcome of one classification run.
type BatchReportResponse struct {
	Processed          int       `json:"processed"`
	AutoBookedDirect   int       `json:"auto_booked_direct"`
	AutoBookedRelation int       `json:"auto_booked_relation"`
	Suggested          int       `json:"suggested"`
	NeedsReview        int       `json:"needs_review"`
	Conflicts          int       `json:"conflicts"`
	Histogram          [10]int   `json:"confidence_histogram"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
}

// BatchReportFromUseCase converts a batch report to a response.
func BatchReportFromUseCase(r *usecase.BatchReport) *BatchReportResponse {
	return &BatchReportResponse{
		Processed:          r.Processed,
		AutoBookedDirect:   r.AutoBookedDirect,
		AutoBookedRelation: r.AutoBookedRelation,
		Suggested:          r.Suggested,
		NeedsReview:        r.NeedsReview,
		Conflicts:          r.Conflicts,
		Histogram:          r.Histogram,
		StartedAt:          r.StartedAt,
		FinishedAt:         r.FinishedAt,
	}
}

// ConsistencyResponse represents the ledger-wide double-entry check.
type ConsistencyResponse struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Consistent  bool            `json:"consistent"`
	CheckedAt   time.Time       `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency result to a response.
func ConsistencyFromUseCase(r *usecase.ConsistencyResult) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		Consistent:  r.Consistent,
		CheckedAt:   r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
