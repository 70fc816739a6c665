package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "a@example.com" || in.Role != "vendor" || in.StoreName != "Ana Crafts" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "tok",
				User:  &domain.User{ID: "u1", Email: in.Email, Name: in.Name, Role: in.Role, PasswordHash: "hash"},
			}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	body := strings.NewReader(`{"email":"a@example.com","password":"secret","name":"Ana","userType":"vendor","storeName":"Ana Crafts"}`)
	c, rec := newContext(http.MethodPost, "/api/auth/register", body, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("token missing: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing: %v", resp)
	}
	if user["userType"] != "vendor" {
		t.Fatalf("expected camelCase userType, got %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash leaked: %v", user)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password hash leaked: %v", user)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newContext(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"not-an-email","password":"x"}`), nil)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") || !strings.Contains(err.Error(), "userType is required") {
		t.Fatalf("expected JSON field names in message, got %q", err.Error())
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, _ := newContext(http.MethodPost, "/api/auth/register", strings.NewReader(`{bad`), nil)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_PropagatesServiceError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, nil)

	body := strings.NewReader(`{"email":"a@example.com","password":"secret","name":"Ana","userType":"customer"}`)
	c, _ := newContext(http.MethodPost, "/api/auth/register", body, nil)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if password != "secret" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.AuthResult{Token: "tok", User: &domain.User{ID: "u1", Email: email}}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@example.com","password":"secret"}`), nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@example.com","password":"nope"}`), nil)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != testVendor.ID {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: userID, Email: testVendor.Email, Role: domain.RoleVendor}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newContext(http.MethodGet, "/api/auth/me", nil, &testVendor)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ghost := domain.Identity{ID: "ghost", Role: domain.RoleCustomer}
	c, _ = newContext(http.MethodGet, "/api/auth/me", nil, &ghost)
	var he *echo.HTTPError
	if err := h.Me(c); !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}

	c, _ = newContext(http.MethodGet, "/api/auth/me", nil, nil)
	if err := h.Me(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken without identity, got %v", err)
	}
}

func TestAuthHandler_Activity(t *testing.T) {
	var gotLimit int
	activity := &stubActivityService{
		listFn: func(ctx context.Context, actor domain.Identity, limit int) ([]*domain.ActivityEvent, error) {
			if actor.ID != testVendor.ID {
				t.Fatalf("listed activity for wrong actor %s", actor.ID)
			}
			gotLimit = limit
			return []*domain.ActivityEvent{{ActorID: actor.ID, Action: domain.ActionLoggedIn}}, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, activity)

	c, rec := newContext(http.MethodGet, "/api/auth/activity?limit=5", nil, &testVendor)
	if err := h.Activity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotLimit != 5 {
		t.Fatalf("unexpected result: code=%d limit=%d", rec.Code, gotLimit)
	}

	c, _ = newContext(http.MethodGet, "/api/auth/activity?limit=abc", nil, &testVendor)
	if err := h.Activity(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	body := strings.NewReader(`{"email":"a@example.com","password":"` + strings.Repeat("a", 80) + `","name":"Ana","userType":"vendor"}`)
	c, _ := newContext(http.MethodPost, "/api/auth/register", body, nil)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "password must be at most 72") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
