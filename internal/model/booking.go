package model

import "time"

// Booking status values.  Only CONFIRMED is ever written today; the
// column exists so a cancellation flow can be added without a schema
// change.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Seat identifies one physical seat inside a hall's grid.  Rows and
// columns are 1-based.
type Seat struct {
	Row uint32 `json:"row"` // booking_seats.seat_row
	Col uint32 `json:"col"` // booking_seats.seat_col
}

// Booking records a confirmed purchase of one or more seats for a
// single showtime by a single user.  A booking is created atomically
// with its seats and never exists without at least one seat row.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – purchasing user.
//  ShowtimeID      – showtime the seats belong to.
//  TotalPriceCents – authoritative total computed server-side.
//  Status          – CONFIRMED or CANCELLED.
//  CreatedAt       – creation timestamp.
type Booking struct {
	ID              uint64    `json:"id"`                // bookings.id
	UserID          uint64    `json:"user_id"`           // bookings.user_id
	ShowtimeID      uint64    `json:"showtime_id"`       // bookings.showtime_id
	TotalPriceCents int64     `json:"total_price_cents"` // bookings.total_price_cents
	Status          string    `json:"status"`            // bookings.status
	CreatedAt       time.Time `json:"created_at"`        // bookings.created_at
}

// BookingWithSeats is the aggregate returned by read paths: the
// booking row together with its seat coordinates and enough showtime
// context to render a ticket.
type BookingWithSeats struct {
	Booking
	Seats      []Seat    `json:"seats"`
	MovieTitle string    `json:"movie_title"`
	HallName   string    `json:"hall_name"`
	StartsAt   time.Time `json:"starts_at"`
}
