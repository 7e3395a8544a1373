// Package mongodb implements the compliance audit log using the official
// MongoDB driver. Entries duplicate the who/when of history records into a
// store with independent access control and retention.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmkorzh/contacts-backend/internal/config"
	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// ComplianceEntry is one audit document.
type ComplianceEntry struct {
	SubjectID     string         `bson:"subjectId"`
	Operation     string         `bson:"operation"`
	CorrelationID string         `bson:"correlationId"`
	UserID        string         `bson:"userId,omitempty"`
	IPAddress     string         `bson:"ipAddress,omitempty"`
	UserAgent     string         `bson:"userAgent,omitempty"`
	RecordedAt    time.Time      `bson:"recordedAt"`
	Metadata      map[string]any `bson:"metadata,omitempty"`
}

// ComplianceLog writes audit entries to a MongoDB collection.
type ComplianceLog struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewComplianceLog connects to MongoDB and pings it for fail-fast validation.
func NewComplianceLog(ctx context.Context, cfg config.Mongo) (*ComplianceLog, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &ComplianceLog{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Record inserts one audit entry derived from a history record.
func (l *ComplianceLog) Record(ctx context.Context, rec *domain.HistoryRecord) error {
	entry := ComplianceEntry{
		SubjectID:     rec.SubjectID.String(),
		Operation:     string(rec.Operation),
		CorrelationID: rec.CorrelationID,
		RecordedAt:    rec.Timestamp,
		Metadata:      rec.Metadata,
	}
	if rec.UserID != nil {
		entry.UserID = rec.UserID.String()
	}
	if rec.IPAddress != nil {
		entry.IPAddress = *rec.IPAddress
	}
	if rec.UserAgent != nil {
		entry.UserAgent = *rec.UserAgent
	}

	if _, err := l.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert compliance entry: %w", err)
	}

	return nil
}

// Close disconnects the underlying client.
func (l *ComplianceLog) Close(ctx context.Context) error {
	if err := l.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
