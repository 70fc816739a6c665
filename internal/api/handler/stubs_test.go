package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/storelinker/marketplace/internal/api/middleware"
	"github.com/storelinker/marketplace/internal/core/domain"
	"github.com/storelinker/marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) VerifyToken(string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidToken
}

type stubActivityService struct {
	listFn func(ctx context.Context, actor domain.Identity, limit int) ([]*domain.ActivityEvent, error)
}

func (s *stubActivityService) Record(context.Context, domain.ActivityEvent) error { return nil }

func (s *stubActivityService) ListForActor(ctx context.Context, actor domain.Identity, limit int) ([]*domain.ActivityEvent, error) {
	return s.listFn(ctx, actor, limit)
}

type stubProductService struct {
	listAllFn    func(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error)
	getFn        func(ctx context.Context, id string) (*domain.Product, error)
	listOwnedFn  func(ctx context.Context, actor domain.Identity) ([]*domain.Product, error)
	createFn     func(ctx context.Context, actor domain.Identity, in ports.CreateProductInput) (*domain.Product, error)
	updateFn     func(ctx context.Context, actor domain.Identity, id string, upd ports.ProductUpdate) error
	deleteFn     func(ctx context.Context, actor domain.Identity, id string) error
	categoriesFn func(ctx context.Context) ([]string, error)
}

func (s *stubProductService) ListAll(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	return s.listAllFn(ctx, f)
}

func (s *stubProductService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.listAllFn(ctx, ports.ProductFilter{Category: category})
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func (s *stubProductService) ListOwned(ctx context.Context, actor domain.Identity) ([]*domain.Product, error) {
	return s.listOwnedFn(ctx, actor)
}

func (s *stubProductService) Create(ctx context.Context, actor domain.Identity, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubProductService) Update(ctx context.Context, actor domain.Identity, id string, upd ports.ProductUpdate) error {
	return s.updateFn(ctx, actor, id, upd)
}

func (s *stubProductService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubOfferService struct {
	createFn func(ctx context.Context, actor domain.Identity, in ports.CreateOfferInput) (*domain.Offer, error)
	updateFn func(ctx context.Context, actor domain.Identity, id string, upd ports.OfferUpdate) error
	listFn   func(ctx context.Context, f ports.OfferFilter) ([]*domain.Offer, error)
}

func (s *stubOfferService) ListAll(ctx context.Context, f ports.OfferFilter) ([]*domain.Offer, error) {
	return s.listFn(ctx, f)
}

func (s *stubOfferService) ListByCategory(ctx context.Context, category string) ([]*domain.Offer, error) {
	return s.listFn(ctx, ports.OfferFilter{Category: category})
}

func (s *stubOfferService) Get(context.Context, string) (*domain.Offer, error) {
	return nil, domain.ErrOfferNotFound
}

func (s *stubOfferService) ListOwned(context.Context, domain.Identity) ([]*domain.Offer, error) {
	return []*domain.Offer{}, nil
}

func (s *stubOfferService) Create(ctx context.Context, actor domain.Identity, in ports.CreateOfferInput) (*domain.Offer, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubOfferService) Update(ctx context.Context, actor domain.Identity, id string, upd ports.OfferUpdate) error {
	return s.updateFn(ctx, actor, id, upd)
}

func (s *stubOfferService) Delete(context.Context, domain.Identity, string) error {
	return nil
}

type stubStoreService struct {
	getFn func(ctx context.Context, id string) (*ports.StoreDetail, error)
}

func (s *stubStoreService) ListStores(context.Context) ([]domain.Store, error) {
	return []domain.Store{{ID: "v1", Name: "Ana Crafts"}}, nil
}

func (s *stubStoreService) GetStore(ctx context.Context, id string) (*ports.StoreDetail, error) {
	return s.getFn(ctx, id)
}

var testVendor = domain.Identity{ID: "v1", Email: "v@shop.test", Role: domain.RoleVendor}

// newContext builds an echo context with the validator registered and, when
// actor is non-nil, the identity the Auth middleware would have stored.
func newContext(method, target string, body io.Reader, actor *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		middleware.SetIdentity(c, *actor)
	}
	return c, rec
}
