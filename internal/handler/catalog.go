package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartelera/movie-ticket-booking/internal/booking"
	"github.com/cartelera/movie-ticket-booking/internal/repository"
)

// CatalogHandler exposes the read-only movie and showtime catalog the
// booking flow browses.  Catalog writes are an admin concern handled
// elsewhere.
type CatalogHandler struct {
	MovieRepo    *repository.MovieRepo
	ShowtimeRepo *repository.ShowtimeRepo
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(movies *repository.MovieRepo, showtimes *repository.ShowtimeRepo) *CatalogHandler {
	if movies == nil || showtimes == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{MovieRepo: movies, ShowtimeRepo: showtimes}
}

// ListMovies handles GET /v1/movies.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.MovieRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// ListShowtimes handles GET /v1/movies/:id/showtimes, returning each
// showtime with its hall so clients can render the seat grid.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	movieID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.MovieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.ShowtimeRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtimes"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetShowtime handles GET /v1/showtimes/:id, returning the showtime
// with hall bounds and movie title.
func (h *CatalogHandler) GetShowtime(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	st, err := h.ShowtimeRepo.GetWithHall(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": st})
}
