// Package history implements the append-only history log and the replay
// engine that reconstructs entity state from it.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

type historyRepo interface {
	Create(ctx context.Context, rec *domain.HistoryRecord) error
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.HistoryRecord, error)
	ListByCorrelationID(ctx context.Context, correlationID string) ([]*domain.HistoryRecord, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.HistoryRecord, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// complianceLog mirrors the who/when of each record into a separate audit
// store. Optional; writes are best-effort.
type complianceLog interface {
	Record(ctx context.Context, rec *domain.HistoryRecord) error
}

// Service provides history recording, querying and replay.
type Service struct {
	history    historyRepo
	compliance complianceLog
	retention  time.Duration
	log        *slog.Logger
}

// NewService creates a new history service. compliance may be nil to
// disable audit mirroring.
func NewService(log *slog.Logger, history historyRepo, compliance complianceLog, retention time.Duration) *Service {
	return &Service{
		history:    history,
		compliance: compliance,
		retention:  retention,
		log:        log.With("service", "history"),
	}
}
