package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
	"github.com/storelinker/marketplace/internal/pkg/token"
)

// AuthService implements registration, login and bearer verification.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *token.Manager
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Manager, activity ports.ActivityPublisher, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		activity: publisherOrNoop(activity),
		log:      log,
	}
}

// Register stores a new account and returns a token for it. Duplicate emails
// are detected by the repository's unique constraint, not by a prior lookup.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (res *ports.AuthResult, err error) {
	defer func() { observeAuth("register", err) }()

	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	role := strings.ToLower(strings.TrimSpace(in.Role))

	switch {
	case email == "" || in.Password == "" || name == "":
		return nil, domain.Invalid("email, password, name and userType are required")
	case !domain.ValidRole(role):
		return nil, domain.Invalid("userType must be one of: vendor customer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if role == domain.RoleVendor {
		user.StoreName = strings.TrimSpace(in.StoreName)
		if user.StoreName == "" {
			user.StoreName = domain.DefaultStoreName(name)
		}
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Info().Str("email", email).Msg("registration rejected: email taken")
		}
		return nil, err
	}

	signed, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}

	identity := domain.Identity{ID: created.ID, Email: created.Email, Role: created.Role}
	s.activity.Publish(activity(identity, domain.ActionRegistered, domain.KindUser, created.ID))
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{Token: signed, User: created}, nil
}

// Login checks the password against the stored hash and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (res *ports.AuthResult, err error) {
	defer func() { observeAuth("login", err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.Invalid("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	identity := domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.activity.Publish(activity(identity, domain.ActionLoginFailed, domain.KindUser, user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.activity.Publish(activity(identity, domain.ActionLoggedIn, domain.KindUser, user.ID))
	return &ports.AuthResult{Token: signed, User: user}, nil
}

// VerifyToken decodes a bearer token into the caller's identity.
func (s *AuthService) VerifyToken(raw string) (*domain.Identity, error) {
	return s.tokens.Verify(raw)
}

// Profile returns the public view of the given account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
