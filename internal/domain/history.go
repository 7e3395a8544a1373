package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OperationType classifies a recorded mutation. The set is closed.
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// Valid reports whether op is one of the three known operations.
func (op OperationType) Valid() bool {
	switch op {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// HistoryRecord is an immutable, timestamped snapshot of a domain
// mutation. Records for a subject, ordered by timestamp ascending, form
// the subject's total history.
type HistoryRecord struct {
	ID        uuid.UUID
	SubjectID uuid.UUID
	Operation OperationType
	Data      []byte
	Timestamp time.Time

	// Seq is the monotonic insertion order, assigned by the store.
	// It breaks ties between records sharing one timestamp.
	Seq int64

	CorrelationID string

	// Actor metadata, all optional.
	UserID    *uuid.UUID
	IPAddress *string
	UserAgent *string

	// Metadata holds extension data, e.g. the request path.
	Metadata map[string]any
}

// NewHistoryRecord creates a history record stamped with the current UTC
// time. Data must be a valid JSON snapshot (nil is allowed for DELETE).
func NewHistoryRecord(subjectID uuid.UUID, op OperationType, data []byte, correlationID string) (*HistoryRecord, error) {
	if subjectID == uuid.Nil {
		return nil, NewValidationError("subjectId", "is required")
	}
	if !op.Valid() {
		return nil, NewValidationError("operationType", "must be CREATE, UPDATE or DELETE")
	}
	if len(data) > 0 && !json.Valid(data) {
		return nil, NewValidationError("data", "must be valid JSON")
	}

	return &HistoryRecord{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Operation:     op,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}, nil
}
