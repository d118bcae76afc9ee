package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cartelera/movie-ticket-booking/internal/booking"
	"github.com/cartelera/movie-ticket-booking/internal/config"
	"github.com/cartelera/movie-ticket-booking/internal/database"
	"github.com/cartelera/movie-ticket-booking/internal/handler"
	"github.com/cartelera/movie-ticket-booking/internal/queue"
	"github.com/cartelera/movie-ticket-booking/internal/repository"
	"github.com/cartelera/movie-ticket-booking/internal/router"
	queue_publisher "github.com/cartelera/movie-ticket-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate
	// limiting but never the booking path.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	movieRepo := repository.NewMovieRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)

	svc := booking.NewService(showtimeRepo, bookingRepo, userRepo, queue_publisher.NewPublisher())

	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	catalogHandler := handler.NewCatalogHandler(movieRepo, showtimeRepo)
	bookingHandler := handler.NewBookingHandler(svc)

	e := echo.New()
	router.RegisterRoutes(e, catalogHandler, bookingHandler, config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	// Ticket mailer stand-in: consumes ticket.issued and appends to
	// logs/tickets.log.  Runs for the life of the process.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
