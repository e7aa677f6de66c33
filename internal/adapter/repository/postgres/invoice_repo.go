package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, number, contact_id, kind, invoice_date, amount, status, settled_at, created_at, updated_at`

// Create creates a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, number, contact_id, kind, invoice_date, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		invoice.ID,
		invoice.Number,
		invoice.ContactID,
		string(invoice.Kind),
		timeToPgTimestamptz(invoice.Date),
		decimalToNumeric(invoice.Amount),
		string(invoice.Status),
		timeToPgTimestamptz(invoice.CreatedAt),
		timeToPgTimestamptz(invoice.UpdatedAt),
	)

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)

	return scanInvoiceRow(row)
}

// GetByIDForUpdate retrieves an invoice with a FOR UPDATE lock so two
// settlements cannot clear the same invoice.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	row := tx.(*Tx).PgxTx().QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)

	return scanInvoiceRow(row)
}

// ListOpenInWindow retrieves open invoices dated within [from, to].
func (r *InvoiceRepository) ListOpenInWindow(ctx context.Context, from, to time.Time) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE status = $1 AND invoice_date >= $2 AND invoice_date <= $3
		ORDER BY invoice_date`,
		string(domain.InvoiceStatusOpen),
		timeToPgTimestamptz(from),
		timeToPgTimestamptz(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)

	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

// MarkSettled transitions an open invoice to settled inside the settlement
// transaction.
func (r *InvoiceRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `
		UPDATE invoices
		SET status = $2, settled_at = $3, updated_at = $3
		WHERE id = $1 AND status = $4`,
		id,
		string(domain.InvoiceStatusSettled),
		timeToPgTimestamptz(settledAt),
		string(domain.InvoiceStatusOpen),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceSettled
	}

	return nil
}

func scanInvoiceRow(row pgx.Row) (*domain.Invoice, error) {
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return invoice, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv       domain.Invoice
		kind      string
		date      time.Time
		amount    pgtype.Numeric
		status    string
		settledAt pgtype.Timestamptz
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&inv.ID, &inv.Number, &inv.ContactID, &kind, &date, &amount,
		&status, &settledAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	inv.Kind = domain.InvoiceKind(kind)
	inv.Date = date
	inv.Amount = numericToDecimal(amount)
	inv.Status = domain.InvoiceStatus(status)
	inv.SettledAt = timestamptzPtr(settledAt)
	inv.CreatedAt = createdAt
	inv.UpdatedAt = updatedAt

	return &inv, nil
}
