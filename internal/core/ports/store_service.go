package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// StoreDetail is a store together with its listings.
type StoreDetail struct {
	Store    domain.Store
	Products []*domain.Product
}

type StoreService interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, id string) (*StoreDetail, error)
}
