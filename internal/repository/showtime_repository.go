package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cartelera/movie-ticket-booking/internal/booking"
	"github.com/cartelera/movie-ticket-booking/internal/model"
)

// ShowtimeRepo provides read access to showtimes joined with their
// hall and movie.  The booking flow never traverses relations itself;
// it always receives the full aggregate.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo returns a ShowtimeRepo bound to the given database.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

const showtimeCols = `st.id, st.movie_id, st.hall_id, st.starts_at, st.price_cents,
	       h.id, h.name, h.seat_rows, h.seat_cols, m.title`

// GetWithHall loads a showtime together with its hall grid and movie
// title.  It returns booking.ErrShowtimeNotFound when no such showtime
// exists (a dangling hall or movie reference cannot happen under the
// schema's foreign keys).
func (r *ShowtimeRepo) GetWithHall(ctx context.Context, id uint64) (*model.ShowtimeWithHall, error) {
	const q = `SELECT ` + showtimeCols + `
	           FROM showtimes st
	           JOIN halls h ON h.id = st.hall_id
	           JOIN movies m ON m.id = st.movie_id
	           WHERE st.id = ?`
	var st model.ShowtimeWithHall
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&st.ID, &st.MovieID, &st.HallID, &st.StartsAt, &st.PriceCents,
		&st.Hall.ID, &st.Hall.Name, &st.Hall.SeatRows, &st.Hall.SeatCols, &st.MovieTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// ListByMovie returns upcoming showtimes for a movie with hall info,
// ordered by start time.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.ShowtimeWithHall, error) {
	const q = `SELECT ` + showtimeCols + `
	           FROM showtimes st
	           JOIN halls h ON h.id = st.hall_id
	           JOIN movies m ON m.id = st.movie_id
	           WHERE st.movie_id = ?
	           ORDER BY st.starts_at`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.ShowtimeWithHall, 0)
	for rows.Next() {
		var st model.ShowtimeWithHall
		if err := rows.Scan(
			&st.ID, &st.MovieID, &st.HallID, &st.StartsAt, &st.PriceCents,
			&st.Hall.ID, &st.Hall.Name, &st.Hall.SeatRows, &st.Hall.SeatCols, &st.MovieTitle,
		); err != nil {
			return nil, err
		}
		list = append(list, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
