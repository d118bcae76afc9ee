package booking

import "github.com/cartelera/movie-ticket-booking/internal/model"

// validateRequest checks a submission against the hall grid, the given
// occupied-seat set and the count-matching rules.  Checks run in a
// fixed order and each failure has a distinct error type.  The
// availability check here is advisory: it runs against a read taken
// outside the commit transaction, and the store re-enforces it through
// the (showtime, row, col) uniqueness constraint at commit time.
func validateRequest(st *model.ShowtimeWithHall, seats []model.Seat, occupied []model.Seat, counts TicketCounts) error {
	if oob := seatsOutsideGrid(st.Hall, seats); len(oob) > 0 {
		return &SeatsOutOfBoundsError{Seats: oob, Rows: st.Hall.SeatRows, Cols: st.Hall.SeatCols}
	}
	if dups := duplicateSeats(seats); len(dups) > 0 {
		return &DuplicateSeatsError{Seats: dups}
	}
	if taken := intersectSeats(seats, occupied); len(taken) > 0 {
		return &SeatsTakenError{Seats: taken}
	}
	if counts.Total() != len(seats) {
		return &CountMismatchError{Tickets: counts.Total(), Seats: len(seats)}
	}
	quote := ComputeQuote(st.PriceCents, st.StartsAt, counts)
	if quote.TotalCents <= 0 {
		return ErrZeroValueBooking
	}
	return nil
}

func seatsOutsideGrid(hall model.Hall, seats []model.Seat) []model.Seat {
	var oob []model.Seat
	for _, s := range seats {
		if !hall.Contains(s) {
			oob = append(oob, s)
		}
	}
	return oob
}

func duplicateSeats(seats []model.Seat) []model.Seat {
	seen := make(map[model.Seat]struct{}, len(seats))
	var dups []model.Seat
	for _, s := range seats {
		if _, ok := seen[s]; ok {
			dups = append(dups, s)
			continue
		}
		seen[s] = struct{}{}
	}
	return dups
}

// intersectSeats returns the requested seats that appear in the
// occupied set, preserving request order.
func intersectSeats(requested, occupied []model.Seat) []model.Seat {
	taken := make(map[model.Seat]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}
	var conflicts []model.Seat
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
