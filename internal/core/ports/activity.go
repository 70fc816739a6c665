package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, ev *domain.ActivityEvent) error
	// ListByActor returns at most limit events for actorID, newest first.
	ListByActor(ctx context.Context, actorID string, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityPublisher hands events off for asynchronous persistence.
// Publish must not block the caller.
type ActivityPublisher interface {
	Publish(ev domain.ActivityEvent)
}

// ActivityService records and reads audit events.
type ActivityService interface {
	Record(ctx context.Context, ev domain.ActivityEvent) error
	ListForActor(ctx context.Context, actor domain.Identity, limit int) ([]*domain.ActivityEvent, error)
}
