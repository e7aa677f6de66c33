package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

const entryColumns = `id, entry_date, description, status, kind, transaction_id, created_at, updated_at`

// CreateEntry persists a journal entry and all of its lines inside the
// given transaction. Lines are inserted in order.
func (r *JournalRepository) CreateEntry(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO journal_entries (id, entry_date, description, status, kind, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID,
		timeToPgTimestamptz(entry.Date),
		entry.Description,
		string(entry.Status),
		entry.Kind,
		textOrNil(entry.TransactionID),
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	for i := range entry.Lines {
		line := &entry.Lines[i]

		_, err = pgxTx.Exec(ctx, `
			INSERT INTO journal_lines (id, entry_id, account_id, debit, credit, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID,
			entry.ID,
			line.AccountID,
			decimalToNumeric(line.Debit),
			decimalToNumeric(line.Credit),
			i,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetEntry retrieves a journal entry with its lines.
func (r *JournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	if err := r.loadLines(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListByTransaction retrieves all journal entries linked to a bank
// transaction, oldest first.
func (r *JournalRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY created_at`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := r.loadLines(ctx, entry); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// FinalTotals sums debits and credits over all final journal entries. A
// consistent ledger returns equal totals.
func (r *JournalRepository) FinalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var totalDebit, totalCredit pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.status = $1`,
		string(domain.EntryStatusFinal),
	).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(totalDebit), numericToDecimal(totalCredit), nil
}

func (r *JournalRepository) loadLines(ctx context.Context, entry *domain.JournalEntry) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_id, account_id, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY position`,
		entry.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	entry.Lines = entry.Lines[:0]

	for rows.Next() {
		var (
			line          domain.JournalLine
			debit, credit pgtype.Numeric
		)

		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &debit, &credit); err != nil {
			return err
		}

		line.Debit = numericToDecimal(debit)
		line.Credit = numericToDecimal(credit)
		entry.Lines = append(entry.Lines, line)
	}

	return rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		e             domain.JournalEntry
		status        string
		transactionID pgtype.Text
		date          time.Time
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(&e.ID, &date, &e.Description, &status, &e.Kind, &transactionID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Status = domain.EntryStatus(status)
	e.TransactionID = textPtr(transactionID)
	e.Date = date
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt

	return &e, nil
}
