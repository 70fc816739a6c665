package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	Category string // exact match, case as stored
	Search   string // case-insensitive substring of the name
	VendorID string
}

// ProductUpdate holds the allow-listed mutable product fields.
// Nil fields are left untouched.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	ImageURL      *string
	Category      *string
	Stock         *int
}

// Empty reports whether the update sets nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.OriginalPrice == nil && u.ImageURL == nil && u.Category == nil && u.Stock == nil
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	// UpdateOwned applies upd to the product only if it is owned by vendorID,
	// in a single conditional write. No match yields domain.ErrProductNotFound.
	UpdateOwned(ctx context.Context, id, vendorID string, upd ProductUpdate) error
	// DeleteOwned removes the product only if it is owned by vendorID.
	DeleteOwned(ctx context.Context, id, vendorID string) error
	// Categories returns the distinct category values across all products.
	Categories(ctx context.Context) ([]string, error)
}
