package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
	"github.com/dmkorzh/contacts-backend/pkg/ctxutil"
)

// UpdateContact applies a partial update. Scalar fields overwrite; a
// provided phone list replaces the existing one wholesale.
func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, input UpdateContactInput) (*domain.Contact, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "is required")
	}
	if input.isEmpty() {
		return nil, domain.NewValidationError("input", "no fields to update")
	}

	ctx, correlationID := ctxutil.EnsureCorrelationID(ctx)

	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load contact: %w", err)
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		c.Email = strings.TrimSpace(*input.Email)
	}
	if input.Company != nil {
		c.Company = strings.TrimSpace(*input.Company)
	}
	if input.Notes != nil {
		c.Notes = *input.Notes
	}
	if input.Phones != nil {
		c.Phones = toPhones(*input.Phones)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.UpdatedAt = now
	snapshot := c.Snapshot()

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.contacts.Update(ctx, c); err != nil {
			return fmt.Errorf("update contact: %w", err)
		}
		return s.enqueueEvent(ctx, domain.EventContactUpdated, c.ID, &snapshot, correlationID, now)
	})
	if err != nil {
		return nil, err
	}

	s.recordHistory(ctx, c.ID, domain.OperationUpdate, &snapshot)
	s.invalidateCache(ctx, c.ID)

	s.log.InfoContext(ctx, "contact updated",
		slog.String("contact_id", c.ID.String()),
		slog.String("correlation_id", correlationID),
	)

	return c, nil
}
