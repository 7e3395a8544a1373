package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Known event types. The dispatcher routes them to transport topics via
// an injected table; unknown types fall back to a default topic.
const (
	EventContactCreated   = "ContactCreated"
	EventContactUpdated   = "ContactUpdated"
	EventContactDeleted   = "ContactDeleted"
	EventReportRequested  = "ReportRequested"
	EventReportCompleted  = "ReportCompleted"
	EventNotificationSent = "NotificationSent"
)

// ContactEventPayload is the serialized body of contact lifecycle events.
// The outbox treats it as opaque bytes; it is marshaled once at enqueue
// time and never re-interpreted by the dispatcher.
type ContactEventPayload struct {
	ContactID  string           `json:"contactId"`
	Snapshot   *ContactSnapshot `json:"snapshot,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewContactEventPayload marshals an event payload for the given contact.
// Snapshot is nil for deletions.
func NewContactEventPayload(contactID uuid.UUID, snapshot *ContactSnapshot, occurredAt time.Time) ([]byte, error) {
	return json.Marshal(ContactEventPayload{
		ContactID:  contactID.String(),
		Snapshot:   snapshot,
		OccurredAt: occurredAt.UTC(),
	})
}
