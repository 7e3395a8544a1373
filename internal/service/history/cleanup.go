package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Cleanup deletes records older than the retention window. Returns the
// number of deleted records. Replay after a sweep only sees the surviving
// suffix of a subject's history, so retention is sized in years.
func (s *Service) Cleanup(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	deleted, err := s.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete history before cutoff: %w", err)
	}

	if deleted > 0 {
		s.log.InfoContext(ctx, "history records swept",
			slog.Int("deleted", deleted),
			slog.Time("cutoff", cutoff),
		)
	}

	return deleted, nil
}
