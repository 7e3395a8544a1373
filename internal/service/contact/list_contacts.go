package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// listPage is the cached form of one list query result.
type listPage struct {
	Contacts []*domain.Contact `json:"contacts"`
	Total    int               `json:"total"`
}

// ListContacts returns a page of contacts ordered by name, with the total
// count for pagination. Pages are read through the cache when one is
// configured; mutations invalidate every cached page.
func (s *Service) ListContacts(ctx context.Context, limit, offset int) ([]*domain.Contact, int, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	key := listKey(limit, offset)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var page listPage
			if err := json.Unmarshal(cached, &page); err == nil {
				return page.Contacts, page.Total, nil
			}
			// Unreadable entry: fall through to the database.
			s.log.WarnContext(ctx, "dropping corrupt cache entry", slog.String("key", key))
			_ = s.cache.Delete(ctx, key)
		}
	}

	contacts, total, err := s.contacts.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(listPage{Contacts: contacts, Total: total}); err == nil {
			if err := s.cache.Set(ctx, key, encoded); err != nil {
				s.log.WarnContext(ctx, "cache write failed",
					slog.String("key", key),
					slog.Any("error", err),
				)
			}
		}
	}

	return contacts, total, nil
}
