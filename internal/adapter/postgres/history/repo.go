// Package history implements the append-only history repository using
// PostgreSQL. Records are never updated or individually deleted; the only
// delete path is the retention sweep.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkorzh/contacts-backend/internal/adapter/postgres"
	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "history"

// insertColumns excludes seq: the store assigns it on insert.
var insertColumns = []string{
	"id", "subject_id", "operation", "data", "recorded_at",
	"correlation_id", "user_id", "ip_address", "user_agent", "metadata",
}

var selectColumns = append(append([]string{}, insertColumns...), "seq")

// Repo provides history record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends a history record.
func (r *Repo) Create(ctx context.Context, rec *domain.HistoryRecord) error {
	var metadata []byte
	if len(rec.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("marshal history metadata: %w", err)
		}
	}

	query, args, err := psql.Insert(table).
		Columns(insertColumns...).
		Values(rec.ID, rec.SubjectID, string(rec.Operation), rec.Data, rec.Timestamp,
			rec.CorrelationID, rec.UserID, rec.IPAddress, rec.UserAgent, metadata).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "history_record", rec.ID)
	}

	return nil
}

// DeleteBefore removes records recorded before the cutoff. Idempotent.
// Returns the number of deleted records.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Lt{"recorded_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete history: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete history records: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListBySubject returns the full history of one subject ordered by recorded
// time ascending, equal timestamps by insertion order. Returns an empty
// slice for an unknown subject.
func (r *Repo) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.HistoryRecord, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where(sq.Eq{"subject_id": subjectID}).
		OrderBy("recorded_at ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history by subject: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListByCorrelationID returns every record that shares one correlation ID,
// across subjects, ordered by recorded time ascending.
func (r *Repo) ListByCorrelationID(ctx context.Context, correlationID string) ([]*domain.HistoryRecord, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where(sq.Eq{"correlation_id": correlationID}).
		OrderBy("recorded_at ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history by correlation: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListByDateRange returns records with from <= recorded_at < to, ordered by
// recorded time ascending.
func (r *Repo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.HistoryRecord, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where(sq.GtOrEq{"recorded_at": from}).
		Where(sq.Lt{"recorded_at": to}).
		OrderBy("recorded_at ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history by date range: %w", err)
	}

	return r.list(ctx, query, args)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, query string, args []any) ([]*domain.HistoryRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.HistoryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	var operation string
	var metadata []byte

	err := row.Scan(
		&rec.ID, &rec.SubjectID, &operation, &rec.Data, &rec.Timestamp,
		&rec.CorrelationID, &rec.UserID, &rec.IPAddress, &rec.UserAgent, &metadata,
		&rec.Seq,
	)
	if err != nil {
		return nil, err
	}

	rec.Operation = domain.OperationType(operation)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal history metadata: %w", err)
		}
	}

	return &rec, nil
}
