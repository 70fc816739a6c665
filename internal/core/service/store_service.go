package service

import (
	"context"
	"errors"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

// StoreService exposes vendors as public storefronts.
type StoreService struct {
	users    ports.UserRepository
	products ports.ProductRepository
}

func NewStoreService(users ports.UserRepository, products ports.ProductRepository) *StoreService {
	return &StoreService{users: users, products: products}
}

func (s *StoreService) ListStores(ctx context.Context) ([]domain.Store, error) {
	vendors, err := s.users.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	stores := make([]domain.Store, 0, len(vendors))
	for _, v := range vendors {
		stores = append(stores, domain.StoreFromVendor(v))
	}
	return stores, nil
}

// GetStore returns the vendor's store and its products. Customer accounts
// are not stores.
func (s *StoreService) GetStore(ctx context.Context, id string) (*ports.StoreDetail, error) {
	vendor, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	if !vendor.IsVendor() {
		return nil, domain.ErrStoreNotFound
	}

	products, err := s.products.List(ctx, ports.ProductFilter{VendorID: vendor.ID})
	if err != nil {
		return nil, err
	}
	return &ports.StoreDetail{Store: domain.StoreFromVendor(vendor), Products: products}, nil
}
