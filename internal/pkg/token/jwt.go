// Package token issues and verifies the HS256 bearer tokens handed to clients
// after registration and login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storelinker/marketplace/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims is the token payload. Field names match what the storefront decodes.
type Claims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with a single shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager. A non-positive ttl falls back to 24h.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(u *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		ID:       u.ID,
		Email:    u.Email,
		UserType: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the identity it
// carries. An empty string yields domain.ErrMissingToken; anything else that
// fails yields domain.ErrInvalidToken.
func (m *Manager) Verify(raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, domain.ErrMissingToken
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{ID: claims.ID, Email: claims.Email, Role: claims.UserType}, nil
}
