package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

const insertAuditSQL = `
	INSERT INTO audit_logs (id, action, resource_type, resource_id, detail, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Create creates a new audit log record.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return createAuditLog(ctx, r.pool, log)
}

// CreateTx creates a new audit log record inside an existing transaction so
// the audit trail commits or rolls back with the booking.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return createAuditLog(ctx, tx.(*Tx).PgxTx(), log)
}

func createAuditLog(ctx context.Context, q querier, log *domain.AuditLog) error {
	detail, err := marshalDetail(log.Detail)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, insertAuditSQL,
		log.ID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		detail,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// ListByResource retrieves the audit trail of one resource, oldest first.
func (r *AuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action, resource_type, resource_id, detail, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at`,
		resourceType, resourceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)

	for rows.Next() {
		var (
			log       domain.AuditLog
			detail    []byte
			createdAt time.Time
		)

		if err := rows.Scan(&log.ID, &log.Action, &log.ResourceType, &log.ResourceID, &detail, &createdAt); err != nil {
			return nil, err
		}

		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &log.Detail); err != nil {
				return nil, err
			}
		}

		log.CreatedAt = createdAt
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalDetail(detail domain.JSON) ([]byte, error) {
	if detail == nil {
		return []byte(`{}`), nil
	}

	return json.Marshal(detail)
}
