package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cartelera/movie-ticket-booking/internal/config"
	"github.com/cartelera/movie-ticket-booking/internal/handler"
	"github.com/cartelera/movie-ticket-booking/internal/middleware"
)

// RegisterBooking registers client-scoped booking endpoints under /v1.
// All routes require a valid JWT and the CLIENT role.  Submission is
// additionally rate limited per IP/user/route so a purchase storm on a
// popular showtime degrades into 429s instead of database contention.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CLIENT"),
	)
	g.POST("/bookings", h.SubmitBooking, middleware.NewTokenBucket(rlCfg, rdb))
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetBooking)
}
