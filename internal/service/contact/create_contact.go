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

// CreateContact creates a new contact. The contact row and its outbox
// record commit in one transaction; the history record follows after
// commit.
func (s *Service) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	ctx, correlationID := ctxutil.EnsureCorrelationID(ctx)

	now := time.Now().UTC()
	c := &domain.Contact{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Company:   strings.TrimSpace(input.Company),
		Notes:     input.Notes,
		Phones:    toPhones(input.Phones),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	snapshot := c.Snapshot()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.contacts.Create(ctx, c); err != nil {
			return fmt.Errorf("create contact: %w", err)
		}
		return s.enqueueEvent(ctx, domain.EventContactCreated, c.ID, &snapshot, correlationID, now)
	})
	if err != nil {
		return nil, err
	}

	s.recordHistory(ctx, c.ID, domain.OperationCreate, &snapshot)
	s.invalidateCache(ctx, c.ID)

	s.log.InfoContext(ctx, "contact created",
		slog.String("contact_id", c.ID.String()),
		slog.String("correlation_id", correlationID),
	)

	return c, nil
}
