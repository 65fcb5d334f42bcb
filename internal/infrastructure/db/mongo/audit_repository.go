package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

const (
	authEventsCollection = "auth_events"
	defaultOpTimeout     = 5 * time.Second
)

// authEventDoc is the stored shape of a domain.AuthEvent.
type authEventDoc struct {
	Type       string    `bson:"type"`
	UserID     int64     `bson:"user_id,omitempty"`
	Identifier string    `bson:"identifier,omitempty"`
	Success    bool      `bson:"success"`
	Reason     string    `bson:"reason,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

// AuditRepository implements ports.AuthEventRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection)}
}

var _ ports.AuthEventRepository = (*AuditRepository)(nil)

// EnsureIndexes creates the lookup indexes for the audit trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}, Options: options.Index().SetName("occurred_at_desc")},
	})
	if err != nil {
		return fmt.Errorf("ensure auth_events indexes: %w", err)
	}
	return nil
}

// Insert appends event to the audit collection.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, authEventDoc{
		Type:       string(event.Type),
		UserID:     event.UserID,
		Identifier: event.Identifier,
		Success:    event.Success,
		Reason:     event.Reason,
		OccurredAt: occurred.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
