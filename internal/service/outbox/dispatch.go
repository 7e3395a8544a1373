package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// DispatchResult summarizes one dispatch pass.
type DispatchResult struct {
	Attempted int
	Succeeded int
	Failed    int
}

// DispatchPending delivers one batch of first-attempt pending records,
// oldest first. Each record is handled independently: a failed delivery is
// recorded on that record and the pass moves on. Context cancellation stops
// the pass between records; the remainder stays pending for the next tick.
func (s *Service) DispatchPending(ctx context.Context) (DispatchResult, error) {
	records, err := s.outbox.ListPending(ctx, s.batchSize)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("list pending records: %w", err)
	}

	return s.dispatchBatch(ctx, records), nil
}

// DispatchFailedReadyForRetry delivers one batch of pending records whose
// backoff deadline has passed. Each record is reset for an immediate
// attempt first, so a failure here starts a fresh backoff window.
func (s *Service) DispatchFailedReadyForRetry(ctx context.Context) (DispatchResult, error) {
	records, err := s.outbox.ListRetryReady(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("list retry-ready records: %w", err)
	}

	eligible := records[:0]
	for _, rec := range records {
		if err := rec.ResetForRetry(s.policy); err != nil {
			s.log.WarnContext(ctx, "outbox record not retryable",
				slog.String("record_id", rec.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		eligible = append(eligible, rec)
	}

	return s.dispatchBatch(ctx, eligible), nil
}

func (s *Service) dispatchBatch(ctx context.Context, records []*domain.OutboxRecord) DispatchResult {
	var result DispatchResult

	for _, rec := range records {
		if ctx.Err() != nil {
			s.log.WarnContext(ctx, "dispatch pass interrupted",
				slog.Int("remaining", len(records)-result.Attempted),
			)
			break
		}

		result.Attempted++
		if s.dispatchOne(ctx, rec) {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	return result
}

// dispatchOne attempts delivery of a single record and persists the
// resulting state transition. Publish happens before the status write, so a
// crash between the two re-delivers the record on restart: consumers must
// deduplicate by event ID (at-least-once).
func (s *Service) dispatchOne(ctx context.Context, rec *domain.OutboxRecord) bool {
	// A payload that cannot be re-read is undeliverable; no retry fixes it.
	if !json.Valid(rec.Payload) {
		s.deadLetter(ctx, rec, "payload is not valid JSON")
		return false
	}

	topic := s.routing.TopicFor(rec.EventType)
	headers := map[string]string{
		"eventId":    rec.ID.String(),
		"eventType":  rec.EventType,
		"source":     "contacts-backend",
		"enqueuedAt": rec.CreatedAt.Format(time.RFC3339Nano),
	}

	if err := s.publisher.Publish(ctx, topic, rec.CorrelationID, rec.Payload, headers); err != nil {
		s.recordFailure(ctx, rec, err)
		return false
	}

	if err := rec.MarkProcessed(); err != nil {
		s.log.ErrorContext(ctx, "illegal outbox transition",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return false
	}
	if err := s.outbox.Update(ctx, rec); err != nil {
		// Delivered but not recorded: the record will be re-delivered.
		s.log.ErrorContext(ctx, "persist processed outbox record",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return false
	}

	s.log.InfoContext(ctx, "outbox record dispatched",
		slog.String("record_id", rec.ID.String()),
		slog.String("event_type", rec.EventType),
		slog.String("topic", topic),
	)

	return true
}

func (s *Service) recordFailure(ctx context.Context, rec *domain.OutboxRecord, cause error) {
	message := cause.Error()
	if len(message) > domain.MaxErrorMessageLen {
		message = message[:domain.MaxErrorMessageLen]
	}

	if err := rec.MarkFailed(message, s.policy); err != nil {
		s.log.ErrorContext(ctx, "mark outbox record failed",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return
	}
	if err := s.outbox.Update(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "persist failed outbox record",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	if rec.Status == domain.OutboxStatusFailed {
		s.log.ErrorContext(ctx, "outbox record dead-lettered",
			slog.String("record_id", rec.ID.String()),
			slog.String("event_type", rec.EventType),
			slog.Int("retry_count", rec.RetryCount),
			slog.String("cause", message),
		)
		return
	}

	s.log.WarnContext(ctx, "outbox delivery failed, will retry",
		slog.String("record_id", rec.ID.String()),
		slog.Int("retry_count", rec.RetryCount),
		slog.Time("next_retry_at", *rec.NextRetryAt),
		slog.String("cause", message),
	)
}

func (s *Service) deadLetter(ctx context.Context, rec *domain.OutboxRecord, reason string) {
	if err := rec.MarkFailedPermanent(reason); err != nil {
		s.log.ErrorContext(ctx, "mark outbox record permanently failed",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return
	}
	if err := s.outbox.Update(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "persist dead-lettered outbox record",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	s.log.ErrorContext(ctx, "outbox record dead-lettered without retry",
		slog.String("record_id", rec.ID.String()),
		slog.String("event_type", rec.EventType),
		slog.String("reason", reason),
	)
}

// CleanupProcessed deletes processed records older than the retention
// window. Returns the number of deleted records.
func (s *Service) CleanupProcessed(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	deleted, err := s.outbox.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete processed records: %w", err)
	}

	if deleted > 0 {
		s.log.InfoContext(ctx, "processed outbox records swept",
			slog.Int("deleted", deleted),
			slog.Time("cutoff", cutoff),
		)
	}

	return deleted, nil
}

// Statistics is the per-status census of the outbox table.
type Statistics struct {
	Pending   int
	Processed int
	Failed    int
	Total     int
}

// GetStatistics returns record counts per status.
func (s *Service) GetStatistics(ctx context.Context) (Statistics, error) {
	counts, err := s.outbox.CountByStatus(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("count records by status: %w", err)
	}

	stats := Statistics{
		Pending:   counts[domain.OutboxStatusPending],
		Processed: counts[domain.OutboxStatusProcessed],
		Failed:    counts[domain.OutboxStatusFailed],
	}
	stats.Total = stats.Pending + stats.Processed + stats.Failed

	return stats, nil
}
