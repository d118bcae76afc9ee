// Package booking implements the seat-booking core: pricing, request
// validation and the transactional submission path.  It depends on
// storage only through the interfaces declared in service.go so the
// logic can be exercised without a database.
package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cartelera/movie-ticket-booking/internal/model"
)

// Sentinel errors shared across the booking flow.  Handlers translate
// these into HTTP responses via errors.Is.
var (
	// ErrShowtimeNotFound is returned when the requested showtime
	// (or its hall) does not exist.
	ErrShowtimeNotFound = errors.New("showtime not found")

	// ErrBookingNotFound is returned by read paths when a booking
	// does not exist or belongs to a different user.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrZeroValueBooking is returned when a submission carries no
	// tickets, so its computed total is zero.
	ErrZeroValueBooking = errors.New("booking has no tickets or zero total")

	// ErrPersistence wraps infrastructure failures during commit.
	// The transaction is fully rolled back; callers may retry since
	// resubmission re-validates availability.
	ErrPersistence = errors.New("booking could not be committed")
)

// SeatsOutOfBoundsError reports seats that fall outside the hall grid.
type SeatsOutOfBoundsError struct {
	Seats []model.Seat
	Rows  uint32
	Cols  uint32
}

func (e *SeatsOutOfBoundsError) Error() string {
	return fmt.Sprintf("seats %s outside hall grid %dx%d", formatSeats(e.Seats), e.Rows, e.Cols)
}

// DuplicateSeatsError reports seats that appear more than once in a
// single request.
type DuplicateSeatsError struct {
	Seats []model.Seat
}

func (e *DuplicateSeatsError) Error() string {
	return fmt.Sprintf("duplicate seats in request: %s", formatSeats(e.Seats))
}

// SeatsTakenError reports seats already sold for the showtime.  It is
// produced both by the advisory pre-check and by the transactional
// re-check, so clients always learn which seats conflicted.
type SeatsTakenError struct {
	Seats []model.Seat
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("seats already taken: %s", formatSeats(e.Seats))
}

// CountMismatchError reports a submission whose ticket counts do not
// match the number of selected seats.
type CountMismatchError struct {
	Tickets int // sum of ticket-type counts
	Seats   int // number of submitted seats
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("ticket count %d does not match seat count %d", e.Tickets, e.Seats)
}

func formatSeats(seats []model.Seat) string {
	parts := make([]string, 0, len(seats))
	for _, s := range seats {
		parts = append(parts, fmt.Sprintf("(%d,%d)", s.Row, s.Col))
	}
	return strings.Join(parts, ", ")
}
