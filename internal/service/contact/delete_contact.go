package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
	"github.com/dmkorzh/contacts-backend/pkg/ctxutil"
)

// DeleteContact removes a contact. The deletion event carries no snapshot:
// the contact's last state lives in its history.
func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "is required")
	}

	ctx, correlationID := ctxutil.EnsureCorrelationID(ctx)
	now := time.Now().UTC()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.contacts.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
		return s.enqueueEvent(ctx, domain.EventContactDeleted, id, nil, correlationID, now)
	})
	if err != nil {
		return err
	}

	s.recordHistory(ctx, id, domain.OperationDelete, nil)
	s.invalidateCache(ctx, id)

	s.log.InfoContext(ctx, "contact deleted",
		slog.String("contact_id", id.String()),
		slog.String("correlation_id", correlationID),
	)

	return nil
}
