package service

import (
	"context"
	"time"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityService persists and reads the per-account audit trail.
type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) Record(ctx context.Context, ev domain.ActivityEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	return s.repo.Insert(ctx, &ev)
}

// ListForActor returns the caller's own events, newest first. limit is
// clamped to [1, MaxActivityLimit], with DefaultActivityLimit for <= 0.
func (s *ActivityService) ListForActor(ctx context.Context, actor domain.Identity, limit int) ([]*domain.ActivityEvent, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	events, err := s.repo.ListByActor(ctx, actor.ID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.ActivityEvent{}
	}
	return events, nil
}
