package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const txColumns = `id, tx_date, amount, description, counterparty, status, confidence,
	suggestion, journal_entry_id, settlement_entry_id, created_at, updated_at`

// suggestionRecord is the persisted JSONB shape of a suggestion. The domain
// type stays free of serialization tags.
type suggestionRecord struct {
	Score       int    `json:"score"`
	Source      string `json:"source"`
	Reason      string `json:"reason"`
	Mode        string `json:"mode"`
	AccountID   string `json:"account_id,omitempty"`
	ContactID   string `json:"contact_id,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateBatch inserts a batch of bank transactions. Duplicate IDs are
// skipped so a statement file can be re-imported safely.
func (r *TransactionRepository) CreateBatch(ctx context.Context, txs []*domain.BankTransaction) error {
	batch := &pgx.Batch{}

	for _, t := range txs {
		batch.Queue(`
			INSERT INTO bank_transactions (id, tx_date, amount, description, counterparty, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			t.ID,
			timeToPgTimestamptz(t.Date),
			decimalToNumeric(t.Amount),
			t.Description,
			t.Counterparty,
			string(t.Status),
			timeToPgTimestamptz(t.CreatedAt),
			timeToPgTimestamptz(t.UpdatedAt),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range txs {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a bank transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+txColumns+` FROM bank_transactions WHERE id = $1`, id)

	return scanTransactionRow(row)
}

// GetByIDForUpdate retrieves a bank transaction with a FOR UPDATE lock so
// concurrent bookings of the same transaction serialize.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error) {
	row := tx.(*Tx).PgxTx().QueryRow(ctx, `
		SELECT `+txColumns+` FROM bank_transactions WHERE id = $1 FOR UPDATE`, id)

	return scanTransactionRow(row)
}

// ListByStatus retrieves transactions in a given status, oldest first.
func (r *TransactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]*domain.BankTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+txColumns+`
		FROM bank_transactions
		WHERE status = $1
		ORDER BY tx_date, id
		LIMIT $2 OFFSET $3`,
		string(status), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]*domain.BankTransaction, 0)

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txs = append(txs, t)
	}

	return txs, rows.Err()
}

// UpdateSuggestion stores the latest classification outcome on the
// transaction without touching its status.
func (r *TransactionRepository) UpdateSuggestion(ctx context.Context, id string, suggestion *domain.Suggestion, updatedAt time.Time) error {
	payload, err := marshalSuggestion(suggestion)
	if err != nil {
		return err
	}

	var confidence pgtype.Int4
	if suggestion != nil {
		confidence = pgtype.Int4{Int32: int32(suggestion.Score), Valid: true}
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE bank_transactions
		SET suggestion = $2, confidence = $3, updated_at = $4
		WHERE id = $1`,
		id, payload, confidence, timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// MarkBooked transitions the transaction to its post-booking status and
// links the journal entry, inside the booking transaction.
func (r *TransactionRepository) MarkBooked(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, entryID string, updatedAt time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE bank_transactions
		SET status = $2, journal_entry_id = $3, updated_at = $4
		WHERE id = $1`,
		id, string(status), entryID, timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// MarkReconciled transitions a pending transaction to reconciled and links
// the settlement entry, inside the settlement transaction.
func (r *TransactionRepository) MarkReconciled(ctx context.Context, tx usecase.Transaction, id string, settlementEntryID string, updatedAt time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE bank_transactions
		SET status = $2, settlement_entry_id = $3, updated_at = $4
		WHERE id = $1`,
		id, string(domain.TransactionStatusReconciled), settlementEntryID, timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func marshalSuggestion(s *domain.Suggestion) ([]byte, error) {
	if s == nil {
		return nil, nil
	}

	return json.Marshal(suggestionRecord{
		Score:       s.Score,
		Source:      s.Source,
		Reason:      s.Reason,
		Mode:        string(s.Mode),
		AccountID:   s.AccountID,
		ContactID:   s.ContactID,
		ContactName: s.ContactName,
		Description: s.Description,
	})
}

func unmarshalSuggestion(payload []byte) (*domain.Suggestion, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var rec suggestionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}

	return &domain.Suggestion{
		Score:       rec.Score,
		Source:      rec.Source,
		Reason:      rec.Reason,
		Mode:        domain.BookingMode(rec.Mode),
		AccountID:   rec.AccountID,
		ContactID:   rec.ContactID,
		ContactName: rec.ContactName,
		Description: rec.Description,
	}, nil
}

func scanTransactionRow(row pgx.Row) (*domain.BankTransaction, error) {
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return t, nil
}

func scanTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var (
		t               domain.BankTransaction
		date            time.Time
		amount          pgtype.Numeric
		status          string
		confidence      pgtype.Int4
		suggestion      []byte
		entryID         pgtype.Text
		settlementEntry pgtype.Text
		createdAt       time.Time
		updatedAt       time.Time
	)

	err := row.Scan(&t.ID, &date, &amount, &t.Description, &t.Counterparty, &status,
		&confidence, &suggestion, &entryID, &settlementEntry, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.Date = date
	t.Amount = numericToDecimal(amount)
	t.Status = domain.TransactionStatus(status)
	t.Confidence = int4Ptr(confidence)
	t.JournalEntryID = textPtr(entryID)
	t.SettlementEntryID = textPtr(settlementEntry)
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt

	t.Suggestion, err = unmarshalSuggestion(suggestion)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
