package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/cartelera/movie-ticket-booking/internal/booking"
	"github.com/cartelera/movie-ticket-booking/internal/model"
)

// BookingRepo persists bookings and their seat rows.  Each seat row
// carries the showtime ID denormalized from its booking so the
// uq_showtime_seat unique key on (showtime_id, seat_row, seat_col)
// can enforce the no-double-booking invariant at commit time.  That
// constraint is what serializes concurrent writers per showtime:
// whichever transaction commits second on an overlapping seat fails
// with a duplicate-key error regardless of isolation level, and
// different showtimes never contend with each other.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and all its seat rows in one transaction.
// It populates the generated ID and CreatedAt on b.  When any seat is
// already sold for the showtime the transaction is rolled back and a
// *booking.SeatsTakenError names the conflicting seats; every other
// failure is rolled back and wrapped in booking.ErrPersistence.  The
// caller never observes a partially applied booking.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, seats []model.Seat) error {
	if len(seats) == 0 {
		return booking.ErrZeroValueBooking
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", booking.ErrPersistence, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO bookings (user_id, showtime_id, status, total_price_cents) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, b.UserID, b.ShowtimeID, b.Status, b.TotalPriceCents)
	if err != nil {
		return fmt.Errorf("%w: insert booking: %v", booking.ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: last insert id: %v", booking.ErrPersistence, err)
	}
	b.ID = uint64(id)

	if err := r.createSeatsTx(ctx, tx, b, seats); err != nil {
		if isDuplicateSeat(err) {
			// Lost the race: another booking committed an overlapping
			// seat between the caller's pre-check and this insert.
			// Roll back, then re-read occupancy to name the conflicts.
			_ = tx.Rollback()
			return r.seatConflictError(ctx, b.ShowtimeID, seats)
		}
		return fmt.Errorf("%w: insert seats: %v", booking.ErrPersistence, err)
	}

	// Query back DB-assigned defaults so the caller gets the row as
	// committed.
	const sel = `SELECT status, created_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.Status, &b.CreatedAt); err != nil {
		return fmt.Errorf("%w: read back booking: %v", booking.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateSeat(err) {
			return r.seatConflictError(ctx, b.ShowtimeID, seats)
		}
		return fmt.Errorf("%w: commit: %v", booking.ErrPersistence, err)
	}
	committed = true
	return nil
}

// createSeatsTx bulk-inserts the seat rows for a booking in a single
// statement within the given transaction.
func (r *BookingRepo) createSeatsTx(ctx context.Context, tx *sql.Tx, b *model.Booking, seats []model.Seat) error {
	query := `INSERT INTO booking_seats (booking_id, showtime_id, seat_row, seat_col) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, b.ID, b.ShowtimeID, s.Row, s.Col)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// OccupiedSeats returns every seat coordinate held by a non-cancelled
// booking for the showtime, ordered by row then column.  The result is
// computed from committed rows on every call, so it reflects a
// finished Create immediately.
func (r *BookingRepo) OccupiedSeats(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	const q = `SELECT bs.seat_row, bs.seat_col
	           FROM booking_seats bs
	           JOIN bookings b ON b.id = bs.booking_id
	           WHERE bs.showtime_id = ? AND b.status <> ?
	           ORDER BY bs.seat_row, bs.seat_col`
	rows, err := r.db.QueryContext(ctx, q, showtimeID, model.BookingCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.Row, &s.Col); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// ListByUser returns the user's bookings with seats and showtime
// context, newest first.  Seats for all bookings are fetched in one
// query and stitched in by booking ID.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithSeats, error) {
	const q = `SELECT b.id, b.user_id, b.showtime_id, b.total_price_cents, b.status, b.created_at,
	                  m.title, h.name, st.starts_at
	           FROM bookings b
	           JOIN showtimes st ON st.id = b.showtime_id
	           JOIN movies m ON m.id = st.movie_id
	           JOIN halls h ON h.id = st.hall_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.BookingWithSeats, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d model.BookingWithSeats
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ShowtimeID, &d.TotalPriceCents, &d.Status, &d.CreatedAt,
			&d.MovieTitle, &d.HallName, &d.StartsAt,
		); err != nil {
			return nil, err
		}
		d.Seats = []model.Seat{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_row, seat_col
	          FROM booking_seats
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, seat_row, seat_col`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var s model.Seat
		if err := srows.Scan(&bid, &s.Row, &s.Col); err != nil {
			return nil, err
		}
		idx, ok := index[bid]
		if !ok {
			continue
		}
		details[idx].Seats = append(details[idx].Seats, s)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetByIDForUser returns one booking with its seats, restricted to the
// owning user.  Ownership is enforced in the query itself, so a
// booking that exists but belongs to someone else is indistinguishable
// from a missing one: both yield booking.ErrBookingNotFound.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.BookingWithSeats, error) {
	const q = `SELECT b.id, b.user_id, b.showtime_id, b.total_price_cents, b.status, b.created_at,
	                  m.title, h.name, st.starts_at
	           FROM bookings b
	           JOIN showtimes st ON st.id = b.showtime_id
	           JOIN movies m ON m.id = st.movie_id
	           JOIN halls h ON h.id = st.hall_id
	           WHERE b.id = ? AND b.user_id = ?`
	var d model.BookingWithSeats
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&d.ID, &d.UserID, &d.ShowtimeID, &d.TotalPriceCents, &d.Status, &d.CreatedAt,
		&d.MovieTitle, &d.HallName, &d.StartsAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	d.Seats = []model.Seat{}
	const seatQ = `SELECT seat_row, seat_col FROM booking_seats WHERE booking_id = ? ORDER BY seat_row, seat_col`
	rows, err := r.db.QueryContext(ctx, seatQ, d.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.Row, &s.Col); err != nil {
			return nil, err
		}
		d.Seats = append(d.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

// seatConflictError re-reads current occupancy after a duplicate-key
// rollback and reports which of the requested seats collided.  If the
// re-read itself fails, all requested seats are reported so the client
// still refreshes its availability view.
func (r *BookingRepo) seatConflictError(ctx context.Context, showtimeID uint64, requested []model.Seat) error {
	occupied, err := r.OccupiedSeats(ctx, showtimeID)
	if err != nil {
		return &booking.SeatsTakenError{Seats: requested}
	}
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
	if len(conflicts) == 0 {
		conflicts = requested
	}
	return &booking.SeatsTakenError{Seats: conflicts}
}

// isDuplicateSeat reports whether err is a MySQL duplicate-key error
// (1062), the signal that another booking already holds one of the
// requested seats.
func isDuplicateSeat(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
