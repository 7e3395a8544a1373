// Package outbox implements the transactional outbox dispatcher: it drains
// pending records to the message transport with at-least-once semantics,
// drives the retry/backoff state machine, and sweeps delivered records.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

const DefaultBatchSize = 50

type outboxRepo interface {
	ListPending(ctx context.Context, limit int) ([]*domain.OutboxRecord, error)
	ListRetryReady(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxRecord, error)
	Update(ctx context.Context, rec *domain.OutboxRecord) error
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int, error)
	CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error)
}

type publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Service drains the outbox. A single instance owns the table; there is no
// cross-instance lease, so run exactly one dispatcher per deployment.
type Service struct {
	outbox    outboxRepo
	publisher publisher
	routing   Routing
	policy    domain.RetryPolicy
	batchSize int
	retention time.Duration
	log       *slog.Logger
}

// NewService creates a new outbox dispatcher service.
func NewService(
	log *slog.Logger,
	outbox outboxRepo,
	publisher publisher,
	routing Routing,
	policy domain.RetryPolicy,
	batchSize int,
	retention time.Duration,
) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		outbox:    outbox,
		publisher: publisher,
		routing:   routing,
		policy:    policy,
		batchSize: batchSize,
		retention: retention,
		log:       log.With("service", "outbox"),
	}
}
