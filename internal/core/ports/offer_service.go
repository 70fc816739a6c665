package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// CreateOfferInput carries a new promotion as submitted by a vendor.
type CreateOfferInput struct {
	Title       string
	Description string
	Category    string
	Image       string
	Discount    int
	ValidUntil  string
	Products    []domain.OfferItem
}

// OfferService mirrors ProductService for promotions.
type OfferService interface {
	ListAll(ctx context.Context, filter OfferFilter) ([]*domain.Offer, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Offer, error)
	Get(ctx context.Context, id string) (*domain.Offer, error)
	ListOwned(ctx context.Context, actor domain.Identity) ([]*domain.Offer, error)
	Create(ctx context.Context, actor domain.Identity, in CreateOfferInput) (*domain.Offer, error)
	Update(ctx context.Context, actor domain.Identity, id string, upd OfferUpdate) error
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
