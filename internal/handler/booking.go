package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cartelera/movie-ticket-booking/internal/booking"
	"github.com/cartelera/movie-ticket-booking/internal/model"
)

// BookingHandler exposes the seat-booking flow over HTTP.  All
// business rules live in the booking service; the handler only parses
// requests, passes the authenticated user explicitly and maps the
// service's error taxonomy onto status codes.
type BookingHandler struct {
	Service *booking.Service
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *booking.Service) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc}
}

// submitBookingRequest is the body of POST /v1/bookings.
type submitBookingRequest struct {
	ShowtimeID uint64               `json:"showtime_id"`
	Seats      []model.Seat         `json:"seats"`
	Tickets    booking.TicketCounts `json:"tickets"`
}

// SubmitBooking handles POST /v1/bookings.  It validates the payload
// shape, then delegates to the transaction manager.  On success it
// returns 201 with the committed booking and its seats.  Seat
// conflicts return 409 naming the conflicting seats so the client can
// re-render availability.
func (h *BookingHandler) SubmitBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ShowtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime_id is required"})
	}
	if len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
	}
	if req.Tickets.Adult < 0 || req.Tickets.Child < 0 || req.Tickets.Senior < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket counts must be non-negative"})
	}

	result, err := h.Service.SubmitBooking(c.Request().Context(), userID, req.ShowtimeID, req.Seats, req.Tickets)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": result})
}

// OccupiedSeats handles GET /v1/showtimes/:id/seats.  It returns the
// availability index for a showtime: every seat coordinate currently
// sold.  The route is public so guests can preview a hall before
// logging in.
func (h *BookingHandler) OccupiedSeats(c echo.Context) error {
	showtimeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	seats, err := h.Service.OccupiedSeats(c.Request().Context(), showtimeID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"occupied": seats})
}

// Quote handles GET /v1/showtimes/:id/quote.  Ticket counts arrive as
// query parameters (adult, child, senior).  The response is advisory:
// the same computation runs again on submission and that result is the
// one persisted.
func (h *BookingHandler) Quote(c echo.Context) error {
	showtimeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	counts, err := ticketCountsFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	quote, err := h.Service.QuoteForShowtime(c.Request().Context(), showtimeID, counts)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"quote": quote})
}

// ListMyBookings handles GET /v1/my-bookings for the authenticated
// user, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Service.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id.  Ownership is enforced in
// the store; a booking belonging to another user is reported as not
// found.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	item, err := h.Service.GetBooking(c.Request().Context(), id, userID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

// writeBookingError maps the booking error taxonomy to HTTP responses.
// Validation failures include enough structure for the client to act:
// conflicting seats for 409, expected-vs-given counts for mismatches.
func writeBookingError(c echo.Context, err error) error {
	var (
		oob      *booking.SeatsOutOfBoundsError
		dup      *booking.DuplicateSeatsError
		taken    *booking.SeatsTakenError
		mismatch *booking.CountMismatchError
	)
	switch {
	case errors.Is(err, booking.ErrShowtimeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.As(err, &oob):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "seats out of bounds",
			"seats": oob.Seats,
			"rows":  oob.Rows,
			"cols":  oob.Cols,
		})
	case errors.As(err, &dup):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "duplicate seats in request",
			"seats": dup.Seats,
		})
	case errors.As(err, &taken):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "seats already taken",
			"seats": taken.Seats,
		})
	case errors.As(err, &mismatch):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "ticket count does not match seat count",
			"tickets": mismatch.Tickets,
			"seats":   mismatch.Seats,
		})
	case errors.Is(err, booking.ErrZeroValueBooking):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking has no tickets"})
	case errors.Is(err, booking.ErrPersistence):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed, please retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// ticketCountsFromQuery parses adult/child/senior query parameters,
// defaulting each to zero and rejecting negatives.
func ticketCountsFromQuery(c echo.Context) (booking.TicketCounts, error) {
	var counts booking.TicketCounts
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"adult", &counts.Adult},
		{"child", &counts.Child},
		{"senior", &counts.Senior},
	} {
		raw := c.QueryParam(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return booking.TicketCounts{}, errors.New(p.name + " must be a non-negative integer")
		}
		*p.dst = n
	}
	return counts, nil
}
