package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc     func(ctx context.Context, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	GetByCodeFunc  func(ctx context.Context, code string) (*domain.Account, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListActiveFunc func(ctx context.Context) ([]*domain.Account, error)
	SetActiveFunc  func(ctx context.Context, id string, active bool, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores accounts directly, bypassing any CreateFunc override.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Code == code {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		if acc.Active {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Active = active
	acc.UpdatedAt = updatedAt
	return nil
}

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]*domain.Contact

	CreateFunc   func(ctx context.Context, contact *domain.Contact) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, contact *domain.Contact) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.Contact, error)
	ListFunc     func(ctx context.Context) ([]*domain.Contact, error)
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[string]*domain.Contact),
	}
}

func (m *MockContactRepository) Seed(contacts ...*domain.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range contacts {
		m.contacts[c.ID] = c
	}
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.ID] = contact
	return nil
}

func (m *MockContactRepository) CreateTx(ctx context.Context, tx usecase.Transaction, contact *domain.Contact) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, contact)
	}
	return m.Create(ctx, contact)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.contacts[id]; ok {
		return c, nil
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	contacts := make([]*domain.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateEntryFunc       func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetEntryFunc          func(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListByTransactionFunc func(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error)
	FinalTotalsFunc       func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	if m.ListByTransactionFunc != nil {
		return m.ListByTransactionFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		if e.TransactionID != nil && *e.TransactionID == transactionID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockJournalRepository) FinalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.FinalTotalsFunc != nil {
		return m.FinalTotalsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, e := range m.entries {
		if e.Status != domain.EntryStatusFinal {
			continue
		}
		totalDebit = totalDebit.Add(e.TotalDebit())
		totalCredit = totalCredit.Add(e.TotalCredit())
	}
	return totalDebit, totalCredit, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu  sync.RWMutex
	txs map[string]*domain.BankTransaction

	CreateBatchFunc      func(ctx context.Context, txs []*domain.BankTransaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.BankTransaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error)
	ListByStatusFunc     func(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error)
	UpdateSuggestionFunc func(ctx context.Context, id string, suggestion *domain.Suggestion, updatedAt time.Time) error
	MarkBookedFunc       func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, entryID string, updatedAt time.Time) error
	MarkReconciledFunc   func(ctx context.Context, tx usecase.Transaction, id string, settlementEntryID string, updatedAt time.Time) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txs: make(map[string]*domain.BankTransaction),
	}
}

func (m *MockTransactionRepository) Seed(txs ...*domain.BankTransaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		m.txs[t.ID] = t
	}
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, txs []*domain.BankTransaction) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, txs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		m.txs[t.ID] = t
	}
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.txs[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txs []*domain.BankTransaction
	for _, t := range m.txs {
		if t.Status == status {
			txs = append(txs, t)
		}
	}
	return txs, nil
}

func (m *MockTransactionRepository) UpdateSuggestion(ctx context.Context, id string, suggestion *domain.Suggestion, updatedAt time.Time) error {
	if m.UpdateSuggestionFunc != nil {
		return m.UpdateSuggestionFunc(ctx, id, suggestion, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Suggestion = suggestion
	if suggestion != nil {
		score := suggestion.Score
		t.Confidence = &score
	}
	t.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) MarkBooked(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, entryID string, updatedAt time.Time) error {
	if m.MarkBookedFunc != nil {
		return m.MarkBookedFunc(ctx, tx, id, status, entryID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = status
	t.JournalEntryID = &entryID
	t.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) MarkReconciled(ctx context.Context, tx usecase.Transaction, id string, settlementEntryID string, updatedAt time.Time) error {
	if m.MarkReconciledFunc != nil {
		return m.MarkReconciledFunc(ctx, tx, id, settlementEntryID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = domain.TransactionStatusReconciled
	t.SettlementEntryID = &settlementEntryID
	t.UpdatedAt = updatedAt
	return nil
}

// MockRuleRepository is a mock implementation of RuleRepository.
type MockRuleRepository struct {
	mu    sync.RWMutex
	rules map[string]*domain.Rule

	CreateFunc         func(ctx context.Context, rule *domain.Rule) error
	GetByKeywordFunc   func(ctx context.Context, keyword string) (*domain.Rule, error)
	ListActiveFunc     func(ctx context.Context) ([]*domain.Rule, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*domain.Rule, error)
	IncrementUsageFunc func(ctx context.Context, id string, usedAt time.Time) error
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{
		rules: make(map[string]*domain.Rule),
	}
}

func (m *MockRuleRepository) Seed(rules ...*domain.Rule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rules {
		m.rules[r.ID] = r
	}
}

func (m *MockRuleRepository) Create(ctx context.Context, rule *domain.Rule) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rule)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[rule.ID] = rule
	return nil
}

func (m *MockRuleRepository) GetByKeyword(ctx context.Context, keyword string) (*domain.Rule, error) {
	if m.GetByKeywordFunc != nil {
		return m.GetByKeywordFunc(ctx, keyword)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rules {
		if r.Active && r.Keyword == keyword {
			return r, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

func (m *MockRuleRepository) ListActive(ctx context.Context) ([]*domain.Rule, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rules []*domain.Rule
	for _, r := range m.rules {
		if r.Active {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

func (m *MockRuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Rule, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rules := make([]*domain.Rule, 0, len(m.rules))
	for _, r := range m.rules {
		rules = append(rules, r)
	}
	return rules, nil
}

func (m *MockRuleRepository) IncrementUsage(ctx context.Context, id string, usedAt time.Time) error {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, id, usedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rules[id]
	if !ok {
		return domain.ErrRuleNotFound
	}
	r.UsageCount++
	r.LastUsedAt = &usedAt
	r.UpdatedAt = usedAt
	return nil
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	CreateFunc           func(ctx context.Context, invoice *domain.Invoice) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error)
	ListOpenInWindowFunc func(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error)
	MarkSettledFunc      func(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

func (m *MockInvoiceRepository) Seed(invoices ...*domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range invoices {
		m.invoices[inv.ID] = inv
	}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invoice)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInvoiceRepository) ListOpenInWindow(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
	if m.ListOpenInWindowFunc != nil {
		return m.ListOpenInWindowFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var invoices []*domain.Invoice
	for _, inv := range m.invoices {
		if inv.Open() && !inv.Date.Before(from) && !inv.Date.After(to) {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

func (m *MockInvoiceRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error {
	if m.MarkSettledFunc != nil {
		return m.MarkSettledFunc(ctx, tx, id, settledAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	if !inv.Open() {
		return domain.ErrInvoiceSettled
	}
	inv.Status = domain.InvoiceStatusSettled
	inv.SettledAt = &settledAt
	inv.UpdatedAt = settledAt
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// Logs returns all recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	mu    sync.Mutex
	Txs   []*MockTransaction
	Begun int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++
	tx := &MockTransaction{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// MockIDGenerator generates sequential IDs for deterministic tests.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%04d", m.n)
}
