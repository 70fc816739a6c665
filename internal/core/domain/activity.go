package domain

import "time"

// ActivityAction names something an account did.
type ActivityAction string

const (
	ActionRegistered     ActivityAction = "user.registered"
	ActionLoggedIn       ActivityAction = "user.login"
	ActionLoginFailed    ActivityAction = "user.login_failed"
	ActionProductCreated ActivityAction = "product.created"
	ActionProductUpdated ActivityAction = "product.updated"
	ActionProductDeleted ActivityAction = "product.deleted"
	ActionOfferCreated   ActivityAction = "offer.created"
	ActionOfferUpdated   ActivityAction = "offer.updated"
	ActionOfferDeleted   ActivityAction = "offer.deleted"
)

const (
	KindUser    = "user"
	KindProduct = "product"
	KindOffer   = "offer"
)

// ActivityEvent is one entry of an account's audit trail.
type ActivityEvent struct {
	ID           string         `json:"id"`
	ActorID      string         `json:"actorId"`
	ActorRole    string         `json:"actorRole"`
	Action       ActivityAction `json:"action"`
	ResourceKind string         `json:"resourceKind"`
	ResourceID   string         `json:"resourceId"`
	OccurredAt   time.Time      `json:"occurredAt"`
}
