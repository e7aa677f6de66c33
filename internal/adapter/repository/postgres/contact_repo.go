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

// ContactRepository implements usecase.ContactRepository.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `id, name, role, default_account_id, created_at, updated_at`

const insertContactSQL = `
	INSERT INTO contacts (id, name, role, default_account_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Create creates a new contact.
func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return createContact(ctx, r.pool, contact)
}

// CreateTx creates a new contact inside an existing transaction. Booking
// auto-creates contacts from counterparty names, atomically with the entry.
func (r *ContactRepository) CreateTx(ctx context.Context, tx usecase.Transaction, contact *domain.Contact) error {
	return createContact(ctx, tx.(*Tx).PgxTx(), contact)
}

func createContact(ctx context.Context, q querier, contact *domain.Contact) error {
	_, err := q.Exec(ctx, insertContactSQL,
		contact.ID,
		contact.Name,
		string(contact.Role),
		textOrNil(contact.DefaultAccountID),
		timeToPgTimestamptz(contact.CreatedAt),
		timeToPgTimestamptz(contact.UpdatedAt),
	)

	return err
}

// GetByID retrieves a contact by ID.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}

		return nil, err
	}

	return contact, nil
}

// List retrieves all contacts ordered by name.
func (r *ContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}

		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		c              domain.Contact
		role           string
		defaultAccount pgtype.Text
		createdAt      time.Time
		updatedAt      time.Time
	)

	err := row.Scan(&c.ID, &c.Name, &role, &defaultAccount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Role = domain.ContactRole(role)
	c.DefaultAccountID = textPtr(defaultAccount)
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt

	return &c, nil
}
