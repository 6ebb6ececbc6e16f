package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

const auditCollection = "auth_events"

// MongoAuditRepository persists the authentication audit trail. Events are
// append-only; there is no read path in the service itself.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Type       string `bson:"type"`
	SubjectKey string `bson:"subject_key"`
	SubjectID  string `bson:"subject_id,omitempty"`
	Timestamp  int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Type:       string(event.Type),
		SubjectKey: event.SubjectKey,
		SubjectID:  event.SubjectID,
		Timestamp:  event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
