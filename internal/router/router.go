package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/kritsada/arrival-card-service/internal/config"     // middleware configuration loaders
	"github.com/kritsada/arrival-card-service/internal/handler"    // import the handlers that implement business logic
	"github.com/kritsada/arrival-card-service/internal/middleware" // import middleware for rate limiting and caching
)

// RegisterRoutes registers infrastructure routes on the provided Echo
// instance.  Currently it exposes only a health check, used by load
// balancers and monitoring systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterArrival registers the arrival-card endpoints and their
// middleware.  The submission endpoint sits behind the Redis token-bucket
// rate limiter; the lookup endpoint additionally goes through the
// response cache because issued entry forms never change.  A nil Redis
// client disables both middlewares rather than failing registration.
func RegisterArrival(e *echo.Echo, a *handler.ArrivalHandler, rdb *redis.Client) {
	// Group all public API operations under the /api prefix and rate
	// limit them as a unit.
	g := e.Group("/api")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	// Register a POST endpoint that accepts a complete arrival-card
	// submission at /api/create.
	g.POST("/create", a.Create)
	// Register a GET endpoint that resolves an issued entry form by its
	// document identifier at /api/entry/:uniqueId, served through the
	// response cache.
	g.GET("/entry/:uniqueId", a.GetEntry, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
}
