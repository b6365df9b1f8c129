package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"inmueblesv-catalog/internal/handlers"
	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/internal/repositories"
	"inmueblesv-catalog/internal/services"
	"inmueblesv-catalog/internal/store"
	"inmueblesv-catalog/internal/transformers"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/cache"
	"inmueblesv-catalog/pkg/config"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/formrelay"
	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	PropertyHandler *handlers.PropertyHandler
	FavoriteHandler *handlers.FavoriteHandler
	ReviewHandler   *handlers.ReviewHandler
	LeadHandler     *handlers.LeadHandler
	UserHandler     *handlers.UserHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server

	catalogCache repositories.CatalogCache
	storeCancel  context.CancelFunc
	storeSubs    []store.Subscription
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	app.initializeDependencies()
	app.initializeStoreFeed()

	app.initializeRouter()

	return app
}

// initialize the database connection
func (a *App) initializeDatabase() {
	if err := database.InitDB(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
}

// initialize the Redis cache
func (a *App) initializeCache() {
	if err := cache.InitRedis(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(100/60.0), 10)
	go a.RateLimiter.Cleanup()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// repositories
	propertyRepo := repositories.NewPropertyRepository()
	reviewRepo := repositories.NewReviewRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	userRepo := repositories.NewUserRepository()
	a.catalogCache = repositories.NewCatalogCache()

	// validators
	propertyValidator := validators.NewPropertyValidator()
	reviewValidator := validators.NewReviewValidator()
	leadValidator := validators.NewLeadValidator()
	userValidator := validators.NewUserValidator()

	// outbound relay
	relay := formrelay.NewClient(a.Config.Relay.URL, time.Duration(a.Config.Relay.TimeoutSeconds)*time.Second)

	// services
	catalogService := services.NewCatalogService(propertyRepo, a.catalogCache, propertyValidator, a.Config.Catalog.PageSize)
	favoriteService := services.NewFavoriteService(favoriteRepo, a.catalogCache, catalogService)
	reviewService := services.NewReviewService(reviewRepo, a.catalogCache, reviewValidator)
	leadService := services.NewLeadService(relay, leadValidator)
	userService := services.NewUserService(userRepo, userValidator, a.Config.JWT.Secret)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(catalogService, a.Config.Catalog.SlideIntervalMS)
	a.FavoriteHandler = handlers.NewFavoriteHandler(favoriteService)
	a.ReviewHandler = handlers.NewReviewHandler(reviewService)
	a.LeadHandler = handlers.NewLeadHandler(leadService)
	a.UserHandler = handlers.NewUserHandler(userService)
}

// initializeStoreFeed subscribes to the record store and keeps the
// Redis property list warm. A feed failure is non-fatal; readers fall
// back to querying Mongo directly until the stream recovers.
func (a *App) initializeStoreFeed() {
	mongoStore := store.NewMongoStore(database.DB, transformers.NewPropertyTransformer(), transformers.NewReviewTransformer())
	ctx, cancel := context.WithCancel(context.Background())
	a.storeCancel = cancel

	propSub, err := mongoStore.SubscribeProperties(ctx, func(snap store.PropertySnapshot) {
		if snap.Err != nil {
			logger.GlobalLogger.Errorf("Property feed error: %v", snap.Err)
			return
		}
		if err := a.catalogCache.SetProperties(ctx, snap.Records, 0); err != nil {
			logger.GlobalLogger.Errorf("Failed to refresh property cache from feed: %v", err)
			return
		}
		logger.GlobalLogger.Debugf("Property cache refreshed from feed: %d records", len(snap.Records))
	})
	if err != nil {
		logger.GlobalLogger.Errorf("Property feed unavailable: %v", err)
	} else {
		a.storeSubs = append(a.storeSubs, propSub)
	}

	revSub, err := mongoStore.SubscribeReviews(ctx, func(snap store.ReviewSnapshot) {
		if snap.Err != nil {
			logger.GlobalLogger.Errorf("Review feed error: %v", snap.Err)
			return
		}
		if err := a.catalogCache.SetReviews(ctx, snap.Reviews, 0); err != nil {
			logger.GlobalLogger.Errorf("Failed to refresh review cache from feed: %v", err)
			return
		}
		logger.GlobalLogger.Debugf("Review cache refreshed from feed: %d reviews", len(snap.Reviews))
	})
	if err != nil {
		logger.GlobalLogger.Errorf("Review feed unavailable: %v", err)
	} else {
		a.storeSubs = append(a.storeSubs, revSub)
	}
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	for _, sub := range a.storeSubs {
		sub.Unsubscribe()
	}
	if a.storeCancel != nil {
		a.storeCancel()
	}
	database.CloseDB()
	cache.CloseRedis()
}
