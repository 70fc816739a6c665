package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelinker/marketplace/internal/pkg/metrics"
	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

const (
	defaultStock      = 10
	defaultProductImg = "https://via.placeholder.com/500x500?text=Product+Image"
	unknownStoreName  = "Unknown Vendor"
)

// CategoryCache abstracts the category list cache (Redis).
type CategoryCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, categories []string) error
	Invalidate(ctx context.Context) error
}

type ProductService struct {
	repo     ports.ProductRepository
	users    ports.UserRepository
	cache    CategoryCache // optional
	activity ports.ActivityPublisher
	log      zerolog.Logger

	// cacheGen advances on every invalidation. A category load only
	// populates the cache if no invalidation happened while it ran.
	cacheGen atomic.Uint64
}

// NewProductService wires the catalog use cases. cache may be nil.
func NewProductService(
	repo ports.ProductRepository,
	users ports.UserRepository,
	cache CategoryCache,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{
		repo:     repo,
		users:    users,
		cache:    cache,
		activity: publisherOrNoop(activity),
		log:      log,
	}
}

func (s *ProductService) ListAll(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	filter.VendorID = ""
	return s.repo.List(ctx, filter)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	if category == "" {
		return []*domain.Product{}, nil
	}
	return s.repo.List(ctx, ports.ProductFilter{Category: category})
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Categories returns the distinct categories, served from the cache when it
// holds a fresh copy. Cache errors never fail the request.
//
// A load that overlaps a product mutation in this process is not written
// back. Mutations on other replicas can still race a write-back; those
// entries live at most CATEGORY_CACHE_TTL.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.CategoryCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("category cache read failed, falling back to store")
		case ok:
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	gen := s.cacheGen.Load()
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheGen.Load() == gen {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.log.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *ProductService) ListOwned(ctx context.Context, actor domain.Identity) ([]*domain.Product, error) {
	if !actor.IsVendor() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, ports.ProductFilter{VendorID: actor.ID})
}

// Create lists a new product for the calling vendor. The discount is derived
// here once and never recomputed on update.
func (s *ProductService) Create(ctx context.Context, actor domain.Identity, in ports.CreateProductInput) (p *domain.Product, err error) {
	defer func() { observeMutation(domain.KindProduct, "create", err) }()

	if !actor.IsVendor() {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	switch {
	case name == "":
		return nil, domain.Invalid("product name is required")
	case in.Price <= 0:
		return nil, domain.Invalid("product price must be greater than 0")
	case category == "":
		return nil, domain.Invalid("product category is required")
	case in.OriginalPrice < 0:
		return nil, domain.Invalid("originalPrice must not be negative")
	case in.Stock != nil && *in.Stock < 0:
		return nil, domain.Invalid("stock must not be negative")
	}

	original := in.OriginalPrice
	if original == 0 {
		original = in.Price
	}
	stock := defaultStock
	if in.Stock != nil {
		stock = *in.Stock
	}
	description := in.Description
	if description == "" {
		description = name + " - Quality product"
	}
	image := in.ImageURL
	if image == "" {
		image = defaultProductImg
	}

	store, err := s.storeSnapshot(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Product{
		Name:          name,
		Description:   description,
		Price:         in.Price,
		OriginalPrice: original,
		Discount:      domain.DiscountPercent(in.Price, original),
		ImageURL:      image,
		Category:      category,
		Stock:         stock,
		Store:         store,
		VendorID:      actor.ID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("vendor_id", actor.ID).Msg("failed to create product")
		return nil, err
	}

	s.invalidateCategories(ctx)
	s.activity.Publish(activity(actor, domain.ActionProductCreated, domain.KindProduct, created.ID))
	s.log.Info().Str("product_id", created.ID).Str("vendor_id", actor.ID).Msg("product created")
	return created, nil
}

// Update applies the allow-listed fields to a product the caller owns.
// Someone else's product and a missing one are both ErrProductNotFound.
func (s *ProductService) Update(ctx context.Context, actor domain.Identity, id string, upd ports.ProductUpdate) (err error) {
	defer func() { observeMutation(domain.KindProduct, "update", err) }()

	if !actor.IsVendor() {
		return domain.ErrForbidden
	}
	if err := validateProductUpdate(upd); err != nil {
		return err
	}

	if err := s.repo.UpdateOwned(ctx, id, actor.ID, upd); err != nil {
		return err
	}

	if upd.Category != nil {
		s.invalidateCategories(ctx)
	}
	s.activity.Publish(activity(actor, domain.ActionProductUpdated, domain.KindProduct, id))
	return nil
}

func (s *ProductService) Delete(ctx context.Context, actor domain.Identity, id string) (err error) {
	defer func() { observeMutation(domain.KindProduct, "delete", err) }()

	if !actor.IsVendor() {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteOwned(ctx, id, actor.ID); err != nil {
		return err
	}

	s.invalidateCategories(ctx)
	s.activity.Publish(activity(actor, domain.ActionProductDeleted, domain.KindProduct, id))
	return nil
}

func (s *ProductService) storeSnapshot(ctx context.Context, vendorID string) (domain.StoreSnapshot, error) {
	vendor, err := s.users.FindByID(ctx, vendorID)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Warn().Str("vendor_id", vendorID).Msg("vendor record missing, listing under placeholder store")
		return domain.StoreSnapshot{Name: unknownStoreName}, nil
	}
	if err != nil {
		return domain.StoreSnapshot{}, fmt.Errorf("load vendor: %w", err)
	}
	return domain.StoreSnapshot{Name: domain.StoreFromVendor(vendor).Name}, nil
}

func (s *ProductService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cacheGen.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("category cache invalidation failed")
	}
}

func validateProductUpdate(u ports.ProductUpdate) error {
	switch {
	case u.Empty():
		return domain.Invalid("no updatable fields supplied")
	case u.Name != nil && strings.TrimSpace(*u.Name) == "":
		return domain.Invalid("product name must not be empty")
	case u.Price != nil && *u.Price <= 0:
		return domain.Invalid("product price must be greater than 0")
	case u.OriginalPrice != nil && *u.OriginalPrice < 0:
		return domain.Invalid("originalPrice must not be negative")
	case u.Category != nil && strings.TrimSpace(*u.Category) == "":
		return domain.Invalid("product category must not be empty")
	case u.Stock != nil && *u.Stock < 0:
		return domain.Invalid("stock must not be negative")
	}
	return nil
}
