package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedContact creates a contact with two phones and returns the filled domain.Contact.
func SeedContact(t *testing.T, pool *pgxpool.Pool) domain.Contact {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	contact := domain.Contact{
		ID:        uuid.New(),
		Name:      "Test Contact " + suffix,
		Email:     "contact-" + suffix + "@example.com",
		Company:   "Acme " + suffix,
		Notes:     "seeded",
		Phones: []domain.Phone{
			{Label: "mobile", Number: "+1555" + suffix[:4]},
			{Label: "work", Number: "+1666" + suffix[:4]},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO contacts (id, name, email, company, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contact.ID, contact.Name, contact.Email, contact.Company, contact.Notes,
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContact insert contact: %v", err)
	}

	for i, phone := range contact.Phones {
		_, err = pool.Exec(ctx,
			`INSERT INTO contact_phones (contact_id, position, label, number)
			 VALUES ($1, $2, $3, $4)`,
			contact.ID, i, phone.Label, phone.Number,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedContact insert phone: %v", err)
		}
	}

	return contact
}

// SeedOutboxRecord inserts an outbox record with the given status and created_at.
// Payload is a minimal valid JSON document.
func SeedOutboxRecord(t *testing.T, pool *pgxpool.Pool, status domain.OutboxStatus, createdAt time.Time) domain.OutboxRecord {
	t.Helper()
	ctx := context.Background()

	rec := domain.OutboxRecord{
		ID:            uuid.New(),
		EventType:     domain.EventContactCreated,
		Payload:       []byte(`{"contactId":"` + uuid.NewString() + `"}`),
		CorrelationID: uuid.NewString(),
		Status:        status,
		CreatedAt:     createdAt.UTC().Truncate(time.Microsecond),
	}
	if status == domain.OutboxStatusProcessed {
		processedAt := rec.CreatedAt.Add(time.Minute)
		rec.ProcessedAt = &processedAt
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO outbox (id, event_type, payload, correlation_id, status,
		                     retry_count, error_message, next_retry_at, processed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.EventType, rec.Payload, rec.CorrelationID, string(rec.Status),
		rec.RetryCount, rec.ErrorMessage, rec.NextRetryAt, rec.ProcessedAt, rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOutboxRecord insert: %v", err)
	}

	return rec
}

// SeedHistoryRecord inserts a history record for the given subject.
// The data column holds the JSON-encoded snapshot, or NULL when snapshot is nil.
func SeedHistoryRecord(t *testing.T, pool *pgxpool.Pool, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot, recordedAt time.Time) domain.HistoryRecord {
	t.Helper()
	ctx := context.Background()

	var data []byte
	if snapshot != nil {
		var err error
		data, err = json.Marshal(snapshot)
		if err != nil {
			t.Fatalf("testhelper: SeedHistoryRecord marshal snapshot: %v", err)
		}
	}

	rec := domain.HistoryRecord{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Operation:     op,
		Data:          data,
		Timestamp:     recordedAt.UTC().Truncate(time.Microsecond),
		CorrelationID: uuid.NewString(),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO history (id, subject_id, operation, data, recorded_at, correlation_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING seq`,
		rec.ID, rec.SubjectID, string(rec.Operation), rec.Data, rec.Timestamp, rec.CorrelationID,
	).Scan(&rec.Seq)
	if err != nil {
		t.Fatalf("testhelper: SeedHistoryRecord insert: %v", err)
	}

	return rec
}
