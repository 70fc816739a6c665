package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// CreateProductInput carries a new listing as submitted by a vendor.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice float64
	ImageURL      string
	Category      string
	Stock         *int
}

// ProductService defines catalog use cases. Mutations require a vendor actor.
type ProductService interface {
	ListAll(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListOwned(ctx context.Context, actor domain.Identity) ([]*domain.Product, error)
	Create(ctx context.Context, actor domain.Identity, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Identity, id string, upd ProductUpdate) error
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
