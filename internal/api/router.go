package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storelinker/marketplace/internal/api/handler"
	"github.com/storelinker/marketplace/internal/api/middleware"
	"github.com/storelinker/marketplace/internal/core/ports"
)

// httpMetrics registers the echoprometheus collectors once per process.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("marketplace")
})

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Auth     ports.AuthService
	Activity ports.ActivityService
	Products ports.ProductService
	Offers   ports.OfferService
	Stores   ports.StoreService
	Health   []handler.DependencyCheck

	// ClientURL is the single origin allowed by CORS. Empty allows any.
	ClientURL string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(d.ClientURL)))
	e.Use(httpMetrics())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Activity)
	productHandler := handler.NewProductHandler(d.Products)
	offerHandler := handler.NewOfferHandler(d.Offers)
	storeHandler := handler.NewStoreHandler(d.Stores)
	healthHandler := handler.NewHealthHandler(d.Health...)

	requireAuth := middleware.Auth(d.Auth)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.GET("/activity", authHandler.Activity, requireAuth)

	// --- Public catalog ---
	api.GET("/products", productHandler.List)
	api.GET("/products/category/:category", productHandler.ListByCategory)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/categories", productHandler.Categories)
	api.GET("/offers", offerHandler.List)
	api.GET("/offers/category/:category", offerHandler.ListByCategory)
	api.GET("/offers/:id", offerHandler.Get)
	api.GET("/stores", storeHandler.List)
	api.GET("/stores/:id", storeHandler.Get)

	// --- Vendor routes ---
	vendor := api.Group("/vendor", requireAuth, middleware.VendorOnly())
	vendor.GET("/products", productHandler.ListOwned)
	vendor.POST("/products", productHandler.Create)
	vendor.PUT("/products/:id", productHandler.Update)
	vendor.DELETE("/products/:id", productHandler.Delete)
	vendor.GET("/offers", offerHandler.ListOwned)
	vendor.POST("/offers", offerHandler.Create)
	vendor.PUT("/offers/:id", offerHandler.Update)
	vendor.DELETE("/offers/:id", offerHandler.Delete)

	return e
}

func corsConfig(clientURL string) echomiddleware.CORSConfig {
	origins := []string{"*"}
	credentials := false
	if clientURL != "" {
		origins = []string{clientURL}
		credentials = true
	}
	return echomiddleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: credentials,
	}
}
