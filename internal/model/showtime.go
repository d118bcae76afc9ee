package model

import "time"

// Showtime is a scheduled screening of a movie in a hall.  Its seat
// space is exactly the hall's grid and its base price is the starting
// point for every quote computed for it.
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie being screened.
//  HallID     – hall the screening takes place in.
//  StartsAt   – scheduled start, stored in UTC.
//  PriceCents – base ticket price in cents before discounts.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Showtime struct {
	ID         uint64    `json:"id"`          // showtimes.id
	MovieID    uint64    `json:"movie_id"`    // showtimes.movie_id
	HallID     uint64    `json:"hall_id"`     // showtimes.hall_id
	StartsAt   time.Time `json:"starts_at"`   // showtimes.starts_at
	PriceCents int64     `json:"price_cents"` // showtimes.price_cents
	CreatedAt  time.Time `json:"-"`           // showtimes.created_at
	UpdatedAt  time.Time `json:"-"`           // showtimes.updated_at
}

// ShowtimeWithHall is the aggregate the booking flow works with: a
// showtime joined with its hall (for seat bounds) and movie title (for
// display and ticket notifications).  Repositories return it fully
// populated so callers never traverse relations themselves.
type ShowtimeWithHall struct {
	Showtime
	Hall       Hall   `json:"hall"`
	MovieTitle string `json:"movie_title"`
}
