package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// RuleRepository implements usecase.RuleRepository.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

const ruleColumns = `id, keyword, match_mode, account_id, contact_id, priority, active,
	is_system, usage_count, last_used_at, created_at, updated_at`

// Create creates a new rule.
func (r *RuleRepository) Create(ctx context.Context, rule *domain.Rule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rules (id, keyword, match_mode, account_id, contact_id, priority, active,
			is_system, usage_count, last_used_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rule.ID,
		rule.Keyword,
		string(rule.Match),
		textOrNil(rule.AccountID),
		textOrNil(rule.ContactID),
		rule.Priority,
		rule.Active,
		rule.System,
		rule.UsageCount,
		timestamptzOrNil(rule.LastUsedAt),
		timeToPgTimestamptz(rule.CreatedAt),
		timeToPgTimestamptz(rule.UpdatedAt),
	)

	return err
}

// GetByKeyword retrieves an active rule by its normalized keyword.
func (r *RuleRepository) GetByKeyword(ctx context.Context, keyword string) (*domain.Rule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+ruleColumns+`
		FROM rules
		WHERE keyword = $1 AND active = true
		ORDER BY priority DESC
		LIMIT 1`,
		domain.NormalizeKeyword(keyword),
	)

	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRuleNotFound
		}

		return nil, err
	}

	return rule, nil
}

// ListActive retrieves all active rules, highest priority first, longer
// keywords before shorter ones at equal priority.
func (r *RuleRepository) ListActive(ctx context.Context) ([]*domain.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM rules
		WHERE active = true
		ORDER BY priority DESC, length(keyword) DESC, keyword`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRules(rows)
}

// List retrieves rules with pagination, most recently created first.
func (r *RuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM rules
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRules(rows)
}

// IncrementUsage bumps the rule's usage counter and its last-used time.
func (r *RuleRepository) IncrementUsage(ctx context.Context, id string, usedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rules
		SET usage_count = usage_count + 1, last_used_at = $2, updated_at = $2
		WHERE id = $1`,
		id, timeToPgTimestamptz(usedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}

	return nil
}

func scanRules(rows pgx.Rows) ([]*domain.Rule, error) {
	rules := make([]*domain.Rule, 0)

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func scanRule(row pgx.Row) (*domain.Rule, error) {
	var (
		rule       domain.Rule
		matchMode  string
		accountID  pgtype.Text
		contactID  pgtype.Text
		lastUsedAt pgtype.Timestamptz
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := row.Scan(&rule.ID, &rule.Keyword, &matchMode, &accountID, &contactID,
		&rule.Priority, &rule.Active, &rule.System, &rule.UsageCount, &lastUsedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rule.Match = domain.MatchMode(matchMode)
	rule.AccountID = textPtr(accountID)
	rule.ContactID = textPtr(contactID)
	rule.LastUsedAt = timestamptzPtr(lastUsedAt)
	rule.CreatedAt = createdAt
	rule.UpdatedAt = updatedAt

	return &rule, nil
}
