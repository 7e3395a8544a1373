package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the lifecycle state of an outbox record.
type OutboxStatus string

const (
	// OutboxStatusPending marks a record awaiting delivery. Records that
	// failed but still have retry budget stay pending with a backoff
	// deadline, so the dispatcher can pick them up again once due.
	OutboxStatusPending OutboxStatus = "PENDING"
	// OutboxStatusProcessed marks a record delivered to the transport.
	OutboxStatusProcessed OutboxStatus = "PROCESSED"
	// OutboxStatusFailed marks a record whose retry budget is exhausted
	// (or whose payload is permanently undeliverable). Terminal; requires
	// operator attention.
	OutboxStatusFailed OutboxStatus = "FAILED"
)

const (
	// DefaultMaxRetries is the delivery attempt budget before a record is
	// dead-lettered.
	DefaultMaxRetries = 5
	// DefaultBackoffBase is the delay after the first failed attempt;
	// it doubles with every subsequent failure.
	DefaultBackoffBase = 2 * time.Minute
	// MaxErrorMessageLen bounds the stored failure reason.
	MaxErrorMessageLen = 1000
)

// RetryPolicy bounds the outbox retry behavior. Injected rather than
// hard-coded so operators (and tests) can tune it.
type RetryPolicy struct {
	MaxRetries  int
	BackoffBase time.Duration
}

// DefaultRetryPolicy returns the standard policy: 5 attempts, 2-minute
// backoff doubling per attempt (2, 4, 8, 16 minutes).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries, BackoffBase: DefaultBackoffBase}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxRetries <= 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.BackoffBase <= 0 {
		p.BackoffBase = DefaultBackoffBase
	}
	return p
}

// backoffDelay returns the delay before the next attempt after
// retryCount consecutive failures: base * 2^(retryCount-1).
func (p RetryPolicy) backoffDelay(retryCount int) time.Duration {
	return p.BackoffBase << (retryCount - 1)
}

// OutboxRecord is a durable unit of work: an event that must eventually
// reach the message transport. It is created in the same transaction as
// the business mutation it describes and mutated only by the dispatcher.
type OutboxRecord struct {
	ID            uuid.UUID
	EventType     string
	Payload       []byte
	CorrelationID string
	Status        OutboxStatus
	RetryCount    int
	ErrorMessage  *string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
}

// NewOutboxRecord creates a pending outbox record with a fresh ID.
func NewOutboxRecord(eventType string, payload []byte, correlationID string) (*OutboxRecord, error) {
	return NewOutboxRecordWithID(uuid.New(), eventType, payload, correlationID)
}

// NewOutboxRecordWithID creates a pending outbox record using a
// caller-provided ID. All identity fields are constructor arguments; there
// is no post-construction mutation of identity.
func NewOutboxRecordWithID(id uuid.UUID, eventType string, payload []byte, correlationID string) (*OutboxRecord, error) {
	if id == uuid.Nil {
		return nil, NewValidationError("id", "is required")
	}

	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, NewValidationError("eventType", "is required")
	}

	if len(payload) == 0 {
		return nil, NewValidationError("payload", "is required")
	}
	if !json.Valid(payload) {
		return nil, NewValidationError("payload", "must be valid JSON")
	}

	return &OutboxRecord{
		ID:            id,
		EventType:     eventType,
		Payload:       payload,
		CorrelationID: correlationID,
		Status:        OutboxStatusPending,
		RetryCount:    0,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// MarkProcessed transitions the record to its terminal success state.
// Legal only from PENDING.
func (r *OutboxRecord) MarkProcessed() error {
	if r.Status != OutboxStatusPending {
		return fmt.Errorf("mark processed from %s: %w", r.Status, ErrInvalidState)
	}

	now := time.Now().UTC()
	r.Status = OutboxStatusProcessed
	r.ProcessedAt = &now
	r.ErrorMessage = nil
	r.NextRetryAt = nil

	return nil
}

// MarkFailed records a delivery failure. While retry budget remains the
// record stays PENDING with an exponential backoff deadline; once the
// budget is consumed it becomes terminally FAILED.
func (r *OutboxRecord) MarkFailed(message string, policy RetryPolicy) error {
	if r.Status != OutboxStatusPending {
		return fmt.Errorf("mark failed from %s: %w", r.Status, ErrInvalidState)
	}
	if err := validateErrorMessage(message); err != nil {
		return err
	}

	policy = policy.normalized()

	r.RetryCount++
	r.ErrorMessage = &message

	if r.RetryCount < policy.MaxRetries {
		next := time.Now().UTC().Add(policy.backoffDelay(r.RetryCount))
		r.NextRetryAt = &next
		return nil
	}

	r.Status = OutboxStatusFailed
	r.NextRetryAt = nil

	return nil
}

// MarkFailedPermanent dead-letters the record immediately, without
// consuming the remaining retry budget. Used for failures no retry can
// fix, such as an undeliverable payload.
func (r *OutboxRecord) MarkFailedPermanent(message string) error {
	if r.Status != OutboxStatusPending {
		return fmt.Errorf("mark failed from %s: %w", r.Status, ErrInvalidState)
	}
	if err := validateErrorMessage(message); err != nil {
		return err
	}

	r.Status = OutboxStatusFailed
	r.ErrorMessage = &message
	r.NextRetryAt = nil

	return nil
}

// ResetForRetry clears the backoff deadline so the record becomes
// immediately eligible again. Legal only while retry budget remains.
func (r *OutboxRecord) ResetForRetry(policy RetryPolicy) error {
	policy = policy.normalized()

	if r.RetryCount >= policy.MaxRetries {
		return fmt.Errorf("outbox record %s: %w", r.ID, ErrRetryExhausted)
	}

	r.Status = OutboxStatusPending
	r.NextRetryAt = nil

	return nil
}

// CanRetry reports whether the record is eligible for a delivery attempt
// at the given instant: budget remains and any backoff deadline has passed.
func (r *OutboxRecord) CanRetry(now time.Time, policy RetryPolicy) bool {
	policy = policy.normalized()

	if r.RetryCount >= policy.MaxRetries {
		return false
	}
	return r.NextRetryAt == nil || !r.NextRetryAt.After(now)
}

func validateErrorMessage(message string) error {
	if message == "" {
		return NewValidationError("errorMessage", "is required")
	}
	if len(message) > MaxErrorMessageLen {
		return NewValidationError("errorMessage", fmt.Sprintf("exceeds %d characters", MaxErrorMessageLen))
	}
	return nil
}
