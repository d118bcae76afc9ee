// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/cartelera/movie-ticket-booking/internal/model"

// TicketIssuedEvent is published after a booking commits.  It carries
// everything the ticket mailer needs to render and address a QR
// ticket without touching the primary database.  The booking itself
// is authoritative: consumers that fail must not affect it.
type TicketIssuedEvent struct {
	BookingID       uint64       `json:"booking_id"`
	UserEmail       string       `json:"user_email"`
	UserName        string       `json:"user_name"`
	MovieTitle      string       `json:"movie_title"`
	HallName        string       `json:"hall_name"`
	StartsAt        string       `json:"starts_at"`
	Seats           []model.Seat `json:"seats"`
	TotalPriceCents int64        `json:"total_price_cents"`
	Promo           string       `json:"promo,omitempty"`
	TicketCode      string       `json:"ticket_code"`
	QRText          string       `json:"qr_text"`
	IssuedAt        string       `json:"issued_at"`
}
