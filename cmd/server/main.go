// Command server runs the marketplace HTTP API.
//
// @title                      Storelinker Marketplace API
// @version                    1.0
// @description                Vendor storefronts, products, offers and accounts.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/storelinker/marketplace/docs"
	"github.com/storelinker/marketplace/internal/api"
	"github.com/storelinker/marketplace/internal/api/handler"
	"github.com/storelinker/marketplace/internal/core/service"
	"github.com/storelinker/marketplace/internal/infrastructure/config"
	mongodb "github.com/storelinker/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/storelinker/marketplace/internal/infrastructure/db/redis"
	"github.com/storelinker/marketplace/internal/infrastructure/queue"
	"github.com/storelinker/marketplace/internal/pkg/token"
	"github.com/storelinker/marketplace/pkg/logger"
)

func main() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; fall back to a bare one for this message.
		logger.Init(logger.Options{Service: "marketplace"})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace",
	})
	log := logger.Get()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, category cache disabled")
		rdb = nil
	}

	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)
	offers := mongodb.NewOfferRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// --- Activity pipeline ---
	activitySvc := service.NewActivityService(activityRepo)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activitySvc, logger.Component("activity"))
	dispatcher.Start(ctx)

	// --- Services ---
	var categoryCache service.CategoryCache
	if rdb != nil {
		categoryCache = redisdb.NewCategoryCache(rdb, cfg.Redis.CategoryCacheTTL)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiration)
	authSvc := service.NewAuthService(users, tokens, dispatcher, logger.Component("auth"))
	productSvc := service.NewProductService(products, users, categoryCache, dispatcher, logger.Component("products"))
	offerSvc := service.NewOfferService(offers, dispatcher, logger.Component("offers"))
	storeSvc := service.NewStoreService(users, products)

	checks := []handler.DependencyCheck{{
		Name: "mongodb",
		Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}}
	if rdb != nil {
		checks = append(checks, redisCheck(rdb))
	}

	e := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Activity:  activitySvc,
		Products:  productSvc,
		Offers:    offerSvc,
		Stores:    storeSvc,
		Health:    checks,
		ClientURL: cfg.ClientURL,
		Log:       logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity queue did not drain")
	}
	stop()
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}
	log.Info().Msg("bye")
}

func redisCheck(rdb *redis.Client) handler.DependencyCheck {
	return handler.DependencyCheck{
		Name: "redis",
		Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}
