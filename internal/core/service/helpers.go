package service

import (
	"errors"
	"time"

	"github.com/storelinker/marketplace/internal/pkg/metrics"
	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type noopPublisher struct{}

func (noopPublisher) Publish(domain.ActivityEvent) {}

func publisherOrNoop(p ports.ActivityPublisher) ports.ActivityPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func activity(actor domain.Identity, action domain.ActivityAction, kind, resourceID string) domain.ActivityEvent {
	return domain.ActivityEvent{
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		Action:       action,
		ResourceKind: kind,
		ResourceID:   resourceID,
		OccurredAt:   time.Now().UTC(),
	}
}

// outcome maps a service error onto the metric result label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrOfferNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	default:
		return "error"
	}
}

func observeMutation(kind, op string, err error) {
	metrics.MutationsTotal.WithLabelValues(kind, op, outcome(err)).Inc()
}

func observeAuth(op string, err error) {
	metrics.AuthAttemptsTotal.WithLabelValues(op, outcome(err)).Inc()
}
