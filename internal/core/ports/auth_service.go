package ports

import (
	"context"

	"github.com/storelinker/marketplace/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Role      string
	StoreName string
}

// AuthResult is a freshly issued token and the public view of its owner.
type AuthResult struct {
	Token string
	User  *domain.User
}

// TokenVerifier decodes bearer tokens for the request pipeline.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Identity, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
