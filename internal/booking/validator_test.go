package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartelera/movie-ticket-booking/internal/model"
)

func showtime5x5(price int64) *model.ShowtimeWithHall {
	return &model.ShowtimeWithHall{
		Showtime: model.Showtime{ID: 1, PriceCents: price, StartsAt: friday},
		Hall:     model.Hall{ID: 1, Name: "Sala A", SeatRows: 5, SeatCols: 5},
	}
}

func TestValidateRequest_SeatOutOfBounds(t *testing.T) {
	st := showtime5x5(1000)
	// Row just past the grid is rejected no matter what is occupied.
	seats := []model.Seat{{Row: 6, Col: 1}}

	err := validateRequest(st, seats, nil, TicketCounts{Adult: 1})

	var oob *SeatsOutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, []model.Seat{{Row: 6, Col: 1}}, oob.Seats)
	assert.Equal(t, uint32(5), oob.Rows)
	assert.Equal(t, uint32(5), oob.Cols)
}

func TestValidateRequest_ZeroCoordinatesOutOfBounds(t *testing.T) {
	st := showtime5x5(1000)
	err := validateRequest(st, []model.Seat{{Row: 0, Col: 1}}, nil, TicketCounts{Adult: 1})

	var oob *SeatsOutOfBoundsError
	assert.ErrorAs(t, err, &oob)
}

func TestValidateRequest_DuplicateSeats(t *testing.T) {
	st := showtime5x5(1000)
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 1}}

	err := validateRequest(st, seats, nil, TicketCounts{Adult: 2})

	var dup *DuplicateSeatsError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, []model.Seat{{Row: 1, Col: 1}}, dup.Seats)
}

func TestValidateRequest_SeatsTakenNamesConflicts(t *testing.T) {
	st := showtime5x5(1000)
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 2}}
	occupied := []model.Seat{{Row: 1, Col: 2}, {Row: 3, Col: 3}}

	err := validateRequest(st, seats, occupied, TicketCounts{Adult: 2})

	var taken *SeatsTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, []model.Seat{{Row: 1, Col: 2}}, taken.Seats)
}

func TestValidateRequest_CountMismatch(t *testing.T) {
	st := showtime5x5(1000)
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}

	err := validateRequest(st, seats, nil, TicketCounts{Adult: 2})

	var mismatch *CountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Tickets)
	assert.Equal(t, 3, mismatch.Seats)
}

func TestValidateRequest_EmptySubmission(t *testing.T) {
	st := showtime5x5(1000)
	err := validateRequest(st, nil, nil, TicketCounts{})
	assert.ErrorIs(t, err, ErrZeroValueBooking)
}

func TestValidateRequest_Valid(t *testing.T) {
	st := showtime5x5(1000)
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 2}}
	occupied := []model.Seat{{Row: 5, Col: 5}}

	err := validateRequest(st, seats, occupied, TicketCounts{Adult: 1, Child: 1})
	assert.NoError(t, err)
}
