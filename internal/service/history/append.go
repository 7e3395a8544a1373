package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
	"github.com/dmkorzh/contacts-backend/pkg/ctxutil"
)

// Append records one mutation of a subject. Snapshot is the complete
// post-operation state; pass nil for deletions. Actor metadata (user,
// client info, correlation ID) is read from the context.
//
// Callers on the business path treat failures as best-effort: a history
// write must never roll back the mutation it describes.
func (s *Service) Append(ctx context.Context, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot) error {
	var data []byte
	if snapshot != nil {
		var err error
		data, err = json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
	}

	_, correlationID := ctxutil.EnsureCorrelationID(ctx)

	rec, err := domain.NewHistoryRecord(subjectID, op, data, correlationID)
	if err != nil {
		return err
	}

	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		rec.UserID = &userID
	}
	if info := ctxutil.ClientInfoFromCtx(ctx); info != (ctxutil.ClientInfo{}) {
		if info.IPAddress != "" {
			rec.IPAddress = &info.IPAddress
		}
		if info.UserAgent != "" {
			rec.UserAgent = &info.UserAgent
		}
	}

	if err := s.history.Create(ctx, rec); err != nil {
		return fmt.Errorf("append history record: %w", err)
	}

	// Audit mirroring never fails the append.
	if s.compliance != nil {
		if err := s.compliance.Record(ctx, rec); err != nil {
			s.log.WarnContext(ctx, "compliance mirror failed",
				slog.String("subject_id", subjectID.String()),
				slog.Any("error", err),
			)
		}
	}

	s.log.InfoContext(ctx, "history record appended",
		slog.String("subject_id", subjectID.String()),
		slog.String("operation", string(op)),
	)

	return nil
}
