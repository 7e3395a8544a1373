// Package contact implements contact management. Every mutation writes the
// contact, an outbox record (same transaction) and, after commit, a history
// record; reads go through the cache.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200

	cacheKeyPrefix = "contact:"
	listPattern    = "contacts:list:*"
)

type contactRepo interface {
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Contact, int, error)
}

type outboxRepo interface {
	Create(ctx context.Context, rec *domain.OutboxRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type historyRecorder interface {
	Append(ctx context.Context, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot) error
}

type cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Service provides contact management operations.
type Service struct {
	contacts contactRepo
	outbox   outboxRepo
	tx       txManager
	history  historyRecorder
	cache    cache
	log      *slog.Logger
}

// NewService creates a new Contact service. cache may be nil to disable
// read-through caching.
func NewService(
	log *slog.Logger,
	contacts contactRepo,
	outbox outboxRepo,
	tx txManager,
	history historyRecorder,
	cache cache,
) *Service {
	return &Service{
		contacts: contacts,
		outbox:   outbox,
		tx:       tx,
		history:  history,
		cache:    cache,
		log:      log.With("service", "contact"),
	}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

// listKey must stay under the listPattern glob so invalidateCache drops it.
func listKey(limit, offset int) string {
	return fmt.Sprintf("contacts:list:%d:%d", limit, offset)
}

// recordHistory appends a history record after a committed mutation.
// Best-effort: the mutation stands even if its history write fails.
func (s *Service) recordHistory(ctx context.Context, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot) {
	if err := s.history.Append(ctx, subjectID, op, snapshot); err != nil {
		s.log.ErrorContext(ctx, "history append failed",
			slog.String("contact_id", subjectID.String()),
			slog.String("operation", string(op)),
			slog.Any("error", err),
		)
	}
}

// invalidateCache drops the contact's cache entry and list pages.
// Best-effort: stale entries expire by TTL anyway.
func (s *Service) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed",
			slog.String("contact_id", id.String()),
			slog.Any("error", err),
		)
	}
	if err := s.cache.DeletePattern(ctx, listPattern); err != nil {
		s.log.WarnContext(ctx, "list cache invalidation failed", slog.Any("error", err))
	}
}

// enqueueEvent creates the outbox record for a mutation inside the caller's
// transaction. Snapshot is nil for deletions.
func (s *Service) enqueueEvent(ctx context.Context, eventType string, contactID uuid.UUID, snapshot *domain.ContactSnapshot, correlationID string, now time.Time) error {
	payload, err := domain.NewContactEventPayload(contactID, snapshot, now)
	if err != nil {
		return err
	}

	rec, err := domain.NewOutboxRecord(eventType, payload, correlationID)
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, rec)
}
