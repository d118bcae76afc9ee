package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cartelera/movie-ticket-booking/internal/model"
	"github.com/cartelera/movie-ticket-booking/internal/queue"
)

// ShowtimeStore provides read access to the catalog.  Implementations
// return ErrShowtimeNotFound when the showtime or its hall is missing.
type ShowtimeStore interface {
	GetWithHall(ctx context.Context, id uint64) (*model.ShowtimeWithHall, error)
}

// BookingStore persists bookings and answers availability queries.
//
// Create must be atomic: either the booking and all its seat rows are
// durably committed, or nothing is.  When any requested seat is
// already sold for the showtime, Create must fail with a
// *SeatsTakenError naming the conflicting seats and leave no partial
// state — even when two requests for overlapping seats race.  Other
// failures are reported wrapped in ErrPersistence.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking, seats []model.Seat) error
	OccupiedSeats(ctx context.Context, showtimeID uint64) ([]model.Seat, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithSeats, error)
	GetByIDForUser(ctx context.Context, id, userID uint64) (*model.BookingWithSeats, error)
}

// UserStore resolves the purchaser so the ticket notification can be
// addressed.  It plays no part in authorization.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Notifier delivers the issued-ticket event after a booking commits.
// Failures must be treated as non-fatal by callers.
type Notifier interface {
	TicketIssued(ctx context.Context, ev queue.TicketIssuedEvent) error
}

// Service is the booking transaction manager.  It validates requests,
// prices them authoritatively and hands the atomic commit to the
// BookingStore.  One Service instance is shared by all request
// handlers; it holds no mutable state of its own, so the per-showtime
// serialization lives entirely in the store's uniqueness constraint.
type Service struct {
	showtimes ShowtimeStore
	bookings  BookingStore
	users     UserStore
	notifier  Notifier
}

// NewService constructs a Service.  The notifier may be nil, in which
// case confirmed bookings simply skip notification.
func NewService(showtimes ShowtimeStore, bookings BookingStore, users UserStore, notifier Notifier) *Service {
	if showtimes == nil || bookings == nil || users == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{showtimes: showtimes, bookings: bookings, users: users, notifier: notifier}
}

// SubmitBooking validates and commits a booking for userID on
// showtimeID.  On success it returns the persisted booking with its
// seats.  Validation failures carry the error types in errors.go; a
// conflict detected at commit time surfaces as *SeatsTakenError
// exactly like one caught by the advisory pre-check.
func (s *Service) SubmitBooking(ctx context.Context, userID, showtimeID uint64, seats []model.Seat, counts TicketCounts) (*model.BookingWithSeats, error) {
	st, err := s.showtimes.GetWithHall(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.bookings.OccupiedSeats(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := validateRequest(st, seats, occupied, counts); err != nil {
		return nil, err
	}

	quote := ComputeQuote(st.PriceCents, st.StartsAt, counts)
	b := &model.Booking{
		UserID:          userID,
		ShowtimeID:      showtimeID,
		TotalPriceCents: quote.TotalCents,
		Status:          model.BookingConfirmed,
	}
	// The store re-checks availability inside its transaction; a race
	// lost between the pre-check above and the commit comes back as
	// *SeatsTakenError with no partial writes.
	if err := s.bookings.Create(ctx, b, seats); err != nil {
		return nil, err
	}

	result := &model.BookingWithSeats{
		Booking:    *b,
		Seats:      seats,
		MovieTitle: st.MovieTitle,
		HallName:   st.Hall.Name,
		StartsAt:   st.StartsAt,
	}
	s.notifyTicketIssued(ctx, result, quote)
	return result, nil
}

// OccupiedSeats returns the availability index for a showtime: every
// seat coordinate held by a non-cancelled booking.  The read is
// computed on demand from committed rows, so it reflects the outcome
// of SubmitBooking immediately.
func (s *Service) OccupiedSeats(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	if _, err := s.showtimes.GetWithHall(ctx, showtimeID); err != nil {
		return nil, err
	}
	return s.bookings.OccupiedSeats(ctx, showtimeID)
}

// QuoteForShowtime prices ticket counts against a showtime without any
// side effect.  It backs the advisory pre-submission quote endpoint.
func (s *Service) QuoteForShowtime(ctx context.Context, showtimeID uint64, counts TicketCounts) (Quote, error) {
	st, err := s.showtimes.GetWithHall(ctx, showtimeID)
	if err != nil {
		return Quote{}, err
	}
	return ComputeQuote(st.PriceCents, st.StartsAt, counts), nil
}

// ListBookings returns the user's bookings, newest first.
func (s *Service) ListBookings(ctx context.Context, userID uint64) ([]model.BookingWithSeats, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// GetBooking returns one booking owned by the user, or
// ErrBookingNotFound.
func (s *Service) GetBooking(ctx context.Context, id, userID uint64) (*model.BookingWithSeats, error) {
	return s.bookings.GetByIDForUser(ctx, id, userID)
}

// notifyTicketIssued publishes the issued-ticket event.  The booking
// is already committed and is the authoritative outcome: any failure
// here is logged and swallowed, never propagated to the caller.
func (s *Service) notifyTicketIssued(ctx context.Context, b *model.BookingWithSeats, quote Quote) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		log.Printf("booking %d: cannot resolve user %d for ticket notification: %v", b.ID, b.UserID, err)
		return
	}
	code := uuid.NewString()
	ev := queue.TicketIssuedEvent{
		BookingID:       b.ID,
		UserEmail:       user.Email,
		UserName:        user.Name,
		MovieTitle:      b.MovieTitle,
		HallName:        b.HallName,
		StartsAt:        b.StartsAt.UTC().Format(time.RFC3339),
		Seats:           b.Seats,
		TotalPriceCents: b.TotalPriceCents,
		Promo:           quote.Promo,
		TicketCode:      code,
		QRText:          fmt.Sprintf("TICKET|booking=%d|code=%s", b.ID, code),
		IssuedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.notifier.TicketIssued(ctx, ev); err != nil {
		log.Printf("booking %d: ticket notification failed (booking stands): %v", b.ID, err)
	}
}
