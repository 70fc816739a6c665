package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	// Create inserts the user. A duplicate email yields domain.ErrUserExists;
	// the storage-level unique index is the only uniqueness check.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListVendors(ctx context.Context) ([]*domain.User, error)
}
