package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// GetHistory returns the full history of one subject, oldest first.
// An unknown subject yields an empty slice.
func (s *Service) GetHistory(ctx context.Context, subjectID uuid.UUID) ([]*domain.HistoryRecord, error) {
	if subjectID == uuid.Nil {
		return nil, domain.NewValidationError("subjectId", "is required")
	}

	records, err := s.history.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list history for subject: %w", err)
	}

	return records, nil
}

// GetByCorrelationID returns every record of one request across subjects,
// oldest first.
func (s *Service) GetByCorrelationID(ctx context.Context, correlationID string) ([]*domain.HistoryRecord, error) {
	if correlationID == "" {
		return nil, domain.NewValidationError("correlationId", "is required")
	}

	records, err := s.history.ListByCorrelationID(ctx, correlationID)
	if err != nil {
		return nil, fmt.Errorf("list history by correlation: %w", err)
	}

	return records, nil
}

// GetByDateRange returns records with from <= timestamp < to, oldest first.
func (s *Service) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.HistoryRecord, error) {
	if !from.Before(to) {
		return nil, domain.NewValidationError("dateRange", "from must be before to")
	}

	records, err := s.history.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list history by date range: %w", err)
	}

	return records, nil
}
