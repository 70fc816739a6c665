package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// OfferFilter narrows an offer listing. Empty fields do not filter.
type OfferFilter struct {
	Category string
	VendorID string
}

// OfferUpdate holds the allow-listed mutable offer fields.
type OfferUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Image       *string
	Discount    *int
	ValidUntil  *string
	Products    *[]domain.OfferItem
}

// Empty reports whether the update sets nothing.
func (u OfferUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil &&
		u.Image == nil && u.Discount == nil && u.ValidUntil == nil && u.Products == nil
}

// OfferRepository defines persistence operations for offers.
type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error)
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]*domain.Offer, error)
	UpdateOwned(ctx context.Context, id, vendorID string, upd OfferUpdate) error
	DeleteOwned(ctx context.Context, id, vendorID string) error
}
