package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// ReplayState reconstructs a subject's state by folding its history in
// chronological order. A nil pointInTime replays the full history; otherwise
// records after the instant are ignored (records at the instant count).
//
// Returns (nil, nil) when the subject does not exist at that point: no
// records yet, or the last applicable record is a DELETE. Absence is an
// answer, not an error.
//
// Replay is deterministic: records with equal timestamps keep their
// insertion order (stable sort), so the same history always folds to the
// same state.
func (s *Service) ReplayState(ctx context.Context, subjectID uuid.UUID, pointInTime *time.Time) (*domain.Contact, error) {
	if subjectID == uuid.Nil {
		return nil, domain.NewValidationError("subjectId", "is required")
	}

	records, err := s.history.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list history for subject: %w", err)
	}

	if len(records) == 0 {
		s.log.InfoContext(ctx, "no history for subject",
			slog.String("subject_id", subjectID.String()),
		)
		return nil, nil
	}

	if pointInTime != nil {
		filtered := records[:0]
		for _, rec := range records {
			if !rec.Timestamp.After(*pointInTime) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	var current *domain.Contact
	for _, rec := range records {
		current = s.fold(ctx, current, rec)
	}

	return current, nil
}

// fold applies one history record to the running state. Records that cannot
// be applied (snapshot undecodable, UPDATE before any CREATE) are skipped
// with a log line rather than aborting the replay.
func (s *Service) fold(ctx context.Context, current *domain.Contact, rec *domain.HistoryRecord) *domain.Contact {
	switch rec.Operation {
	case domain.OperationCreate:
		snapshot, ok := s.decodeSnapshot(ctx, rec)
		if !ok {
			return current
		}
		contact := &domain.Contact{
			ID:        rec.SubjectID,
			CreatedAt: rec.Timestamp,
			UpdatedAt: rec.Timestamp,
		}
		snapshot.ApplyTo(contact)
		return contact

	case domain.OperationUpdate:
		if current == nil {
			s.log.WarnContext(ctx, "skipping update with no preceding create",
				slog.String("subject_id", rec.SubjectID.String()),
				slog.String("record_id", rec.ID.String()),
			)
			return nil
		}
		snapshot, ok := s.decodeSnapshot(ctx, rec)
		if !ok {
			return current
		}
		snapshot.ApplyTo(current)
		current.UpdatedAt = rec.Timestamp
		return current

	case domain.OperationDelete:
		return nil
	}

	s.log.WarnContext(ctx, "skipping record with unknown operation",
		slog.String("record_id", rec.ID.String()),
		slog.String("operation", string(rec.Operation)),
	)
	return current
}

func (s *Service) decodeSnapshot(ctx context.Context, rec *domain.HistoryRecord) (domain.ContactSnapshot, bool) {
	var snapshot domain.ContactSnapshot
	if err := json.Unmarshal(rec.Data, &snapshot); err != nil {
		s.log.WarnContext(ctx, "skipping record with undecodable snapshot",
			slog.String("record_id", rec.ID.String()),
			slog.Any("error", err),
		)
		return domain.ContactSnapshot{}, false
	}
	return snapshot, true
}
