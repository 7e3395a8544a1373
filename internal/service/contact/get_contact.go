package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// GetContact returns a contact by ID, read through the cache when one is
// configured. Cache problems degrade to a database read.
func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "is required")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey(id)); err == nil {
			var c domain.Contact
			if err := json.Unmarshal(cached, &c); err == nil {
				return &c, nil
			}
			// Unreadable entry: fall through to the database.
			s.log.WarnContext(ctx, "dropping corrupt cache entry",
				slog.String("contact_id", id.String()),
			)
			_ = s.cache.Delete(ctx, cacheKey(id))
		}
	}

	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(c); err == nil {
			if err := s.cache.Set(ctx, cacheKey(id), encoded); err != nil {
				s.log.WarnContext(ctx, "cache write failed",
					slog.String("contact_id", id.String()),
					slog.Any("error", err),
				)
			}
		}
	}

	return c, nil
}
