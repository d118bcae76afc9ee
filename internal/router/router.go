// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cartelera/movie-ticket-booking/internal/config"
	"github.com/cartelera/movie-ticket-booking/internal/handler"
	"github.com/cartelera/movie-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication: the
// health check and the public catalog.  Catalog GETs go through the
// Redis response cache; the seat-availability and quote endpoints do
// not, because availability must reflect the latest committed booking
// on every read.
func RegisterRoutes(e *echo.Echo, cat *handler.CatalogHandler, bk *handler.BookingHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/movies", cat.ListMovies, cached)
	e.GET("/v1/movies/:id/showtimes", cat.ListShowtimes, cached)
	e.GET("/v1/showtimes/:id", cat.GetShowtime, cached)

	// Uncached by design: these back the seat-selection screen.
	e.GET("/v1/showtimes/:id/seats", bk.OccupiedSeats)
	e.GET("/v1/showtimes/:id/quote", bk.Quote)
}

// RegisterAuth registers registration and login under /v1/auth, and
// the token-protected /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
