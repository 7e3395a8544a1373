// Package outbox implements the outbox record repository using PostgreSQL.
// Records are written in the same transaction as the business mutation they
// describe (via the tx-in-context pattern) and polled by the dispatcher.
package outbox

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkorzh/contacts-backend/internal/adapter/postgres"
	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "outbox"

var columns = []string{
	"id", "event_type", "payload", "correlation_id", "status",
	"retry_count", "error_message", "next_retry_at", "processed_at", "created_at",
}

// Repo provides outbox record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new outbox repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an outbox record by primary key.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutboxRecord, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select outbox: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "outbox_record", id)
	}

	return rec, nil
}

// ListPending returns up to limit pending records that have never entered
// backoff (first-attempt queue), oldest first.
func (r *Repo) ListPending(ctx context.Context, limit int) ([]*domain.OutboxRecord, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"status": string(domain.OutboxStatusPending)}).
		Where("next_retry_at IS NULL").
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list pending: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListRetryReady returns up to limit pending records whose backoff deadline
// has passed as of now, oldest first.
func (r *Repo) ListRetryReady(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxRecord, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"status": string(domain.OutboxStatusPending)}).
		Where(sq.LtOrEq{"next_retry_at": now}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list retry ready: %w", err)
	}

	return r.list(ctx, query, args)
}

// CountByStatus returns the number of records per status. Statuses with no
// records are absent from the map.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From(table).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by status: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count outbox by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OutboxStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.OutboxStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new outbox record. Call inside the same transaction as
// the business mutation so the record and the mutation commit atomically.
func (r *Repo) Create(ctx context.Context, rec *domain.OutboxRecord) error {
	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.EventType, rec.Payload, rec.CorrelationID, string(rec.Status),
			rec.RetryCount, rec.ErrorMessage, rec.NextRetryAt, rec.ProcessedAt, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert outbox: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "outbox_record", rec.ID)
	}

	return nil
}

// Update persists the dispatcher-owned fields of a record after a state
// transition. Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Update(ctx context.Context, rec *domain.OutboxRecord) error {
	query, args, err := psql.Update(table).
		Set("status", string(rec.Status)).
		Set("retry_count", rec.RetryCount).
		Set("error_message", rec.ErrorMessage).
		Set("next_retry_at", rec.NextRetryAt).
		Set("processed_at", rec.ProcessedAt).
		Where(sq.Eq{"id": rec.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update outbox: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "outbox_record", rec.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox_record %s: %w", rec.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteProcessedBefore removes processed records older than the cutoff.
// Idempotent. Returns the number of deleted records.
func (r *Repo) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"status": string(domain.OutboxStatusProcessed)}).
		Where(sq.Lt{"processed_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete processed: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete processed outbox records: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, query string, args []any) ([]*domain.OutboxRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outbox records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.OutboxRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbox record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*domain.OutboxRecord, error) {
	var rec domain.OutboxRecord
	var status string

	err := row.Scan(
		&rec.ID, &rec.EventType, &rec.Payload, &rec.CorrelationID, &status,
		&rec.RetryCount, &rec.ErrorMessage, &rec.NextRetryAt, &rec.ProcessedAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.OutboxStatus(status)
	return &rec, nil
}
