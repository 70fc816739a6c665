package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

// ActivityRepository implements ports.ActivityRepository on the
// activity_events audit collection.
type ActivityRepository struct {
	col *mongo.Collection
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type mongoActivity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ActorID      string             `bson:"actorId"`
	ActorRole    string             `bson:"actorRole"`
	Action       string             `bson:"action"`
	ResourceKind string             `bson:"resourceKind"`
	ResourceID   string             `bson:"resourceId,omitempty"`
	OccurredAt   time.Time          `bson:"occurredAt"`
	RecordedAt   time.Time          `bson:"recordedAt"`
}

// Insert appends an event to the audit trail.
func (r *ActivityRepository) Insert(ctx context.Context, ev *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoActivity{
		ActorID:      ev.ActorID,
		ActorRole:    ev.ActorRole,
		Action:       string(ev.Action),
		ResourceKind: ev.ResourceKind,
		ResourceID:   ev.ResourceID,
		OccurredAt:   ev.OccurredAt.UTC(),
		RecordedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurredAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"actorId": actorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}

	var docs []mongoActivity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	out := make([]*domain.ActivityEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.ActivityEvent{
			ID:           d.ID.Hex(),
			ActorID:      d.ActorID,
			ActorRole:    d.ActorRole,
			Action:       domain.ActivityAction(d.Action),
			ResourceKind: d.ResourceKind,
			ResourceID:   d.ResourceID,
			OccurredAt:   d.OccurredAt.UTC(),
		})
	}
	return out, nil
}
