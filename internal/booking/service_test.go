package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartelera/movie-ticket-booking/internal/model"
	"github.com/cartelera/movie-ticket-booking/internal/queue"
)

// fakeShowtimeStore serves showtimes from a map.
type fakeShowtimeStore struct {
	byID map[uint64]*model.ShowtimeWithHall
}

func (f *fakeShowtimeStore) GetWithHall(_ context.Context, id uint64) (*model.ShowtimeWithHall, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, ErrShowtimeNotFound
	}
	return st, nil
}

// fakeBookingStore is an in-memory BookingStore whose Create mirrors
// the production contract: atomic per call, conflicts reported as
// *SeatsTakenError, and per-showtime seat uniqueness enforced under a
// mutex so concurrent callers race exactly like they do against the
// database's unique key.
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	sold     map[uint64]map[model.Seat]struct{} // showtime -> occupied seats
	bookings []model.BookingWithSeats
	failWith error // when set, Create fails before writing anything
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{sold: make(map[uint64]map[model.Seat]struct{})}
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking, seats []model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	occupied := f.sold[b.ShowtimeID]
	var conflicts []model.Seat
	for _, s := range seats {
		if _, taken := occupied[s]; taken {
			conflicts = append(conflicts, s)
		}
	}
	if len(conflicts) > 0 {
		return &SeatsTakenError{Seats: conflicts}
	}
	if occupied == nil {
		occupied = make(map[model.Seat]struct{})
		f.sold[b.ShowtimeID] = occupied
	}
	for _, s := range seats {
		occupied[s] = struct{}{}
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, model.BookingWithSeats{Booking: *b, Seats: seats})
	return nil
}

func (f *fakeBookingStore) OccupiedSeats(_ context.Context, showtimeID uint64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seats := make([]model.Seat, 0, len(f.sold[showtimeID]))
	for s := range f.sold[showtimeID] {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Col < seats[j].Col
	})
	return seats, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.BookingWithSeats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.BookingWithSeats
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetByIDForUser(_ context.Context, id, userID uint64) (*model.BookingWithSeats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id && b.UserID == userID {
			cp := b
			return &cp, nil
		}
	}
	return nil, ErrBookingNotFound
}

type fakeUserStore struct{}

func (fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	if id == 0 {
		return model.User{}, sql.ErrNoRows
	}
	return model.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id), Name: "Test User"}, nil
}

// fakeNotifier records delivered events and can be told to fail.
type fakeNotifier struct {
	mu     sync.Mutex
	events []queue.TicketIssuedEvent
	err    error
}

func (f *fakeNotifier) TicketIssued(_ context.Context, ev queue.TicketIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func newTestService(store *fakeBookingStore, notifier *fakeNotifier) *Service {
	showtimes := &fakeShowtimeStore{byID: map[uint64]*model.ShowtimeWithHall{
		1: {
			Showtime:   model.Showtime{ID: 1, MovieID: 1, HallID: 1, StartsAt: friday, PriceCents: 1000},
			Hall:       model.Hall{ID: 1, Name: "Sala A", SeatRows: 5, SeatCols: 5},
			MovieTitle: "Oppenheimer",
		},
	}}
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return NewService(showtimes, store, fakeUserStore{}, n)
}

func TestSubmitBooking_EndToEnd(t *testing.T) {
	store := newFakeBookingStore()
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier)
	ctx := context.Background()

	// 5x5 hall, base price 1000 on a regular day: two adult seats.
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 2}}
	result, err := svc.SubmitBooking(ctx, 7, 1, seats, TicketCounts{Adult: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.TotalPriceCents)
	assert.Equal(t, model.BookingConfirmed, result.Status)
	assert.Len(t, result.Seats, 2)
	assert.NotZero(t, result.ID)

	// The availability index reflects the commit immediately.
	occupied, err := svc.OccupiedSeats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, seats, occupied)

	// A second submission for (1,1) must fail naming the conflict.
	_, err = svc.SubmitBooking(ctx, 8, 1, []model.Seat{{Row: 1, Col: 1}}, TicketCounts{Adult: 1})
	var taken *SeatsTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, []model.Seat{{Row: 1, Col: 1}}, taken.Seats)

	// Exactly one ticket was issued.
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, result.ID, ev.BookingID)
	assert.Equal(t, "user7@example.com", ev.UserEmail)
	assert.NotEmpty(t, ev.TicketCode)
	assert.Contains(t, ev.QRText, ev.TicketCode)
}

func TestSubmitBooking_ShowtimeNotFound(t *testing.T) {
	svc := newTestService(newFakeBookingStore(), nil)
	_, err := svc.SubmitBooking(context.Background(), 7, 99, []model.Seat{{Row: 1, Col: 1}}, TicketCounts{Adult: 1})
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestSubmitBooking_CountMismatch(t *testing.T) {
	svc := newTestService(newFakeBookingStore(), nil)
	seats := []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}

	_, err := svc.SubmitBooking(context.Background(), 7, 1, seats, TicketCounts{Adult: 2})

	var mismatch *CountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Tickets)
	assert.Equal(t, 3, mismatch.Seats)
}

func TestSubmitBooking_ConcurrentOverlapSellsOnce(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	// Two purchasers race for seat (2,2); both also want a free seat
	// of their own, so a lost race must not partially commit.
	const attempts = 2
	reqs := [][]model.Seat{
		{{Row: 2, Col: 2}, {Row: 3, Col: 1}},
		{{Row: 2, Col: 2}, {Row: 4, Col: 1}},
	}
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitBooking(ctx, uint64(10+i), 1, reqs[i], TicketCounts{Adult: 2})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var taken *SeatsTakenError
		require.ErrorAs(t, err, &taken)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	// Only the winner's seats are occupied: the loser's private seat
	// was not sold.
	occupied, err := svc.OccupiedSeats(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, occupied, 2)
}

func TestSubmitBooking_AtomicOnStoreFailure(t *testing.T) {
	store := newFakeBookingStore()
	store.failWith = fmt.Errorf("%w: disk full", ErrPersistence)
	svc := newTestService(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitBooking(ctx, 7, 1, []model.Seat{{Row: 1, Col: 1}}, TicketCounts{Adult: 1})
	require.ErrorIs(t, err, ErrPersistence)

	// Nothing is visible afterwards: no booking, no occupied seat.
	store.failWith = nil
	occupied, err := svc.OccupiedSeats(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, occupied)
	list, err := svc.ListBookings(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmitBooking_NotifierFailureDoesNotAffectBooking(t *testing.T) {
	store := newFakeBookingStore()
	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := newTestService(store, notifier)
	ctx := context.Background()

	result, err := svc.SubmitBooking(ctx, 7, 1, []model.Seat{{Row: 1, Col: 1}}, TicketCounts{Adult: 1})
	require.NoError(t, err)
	assert.NotZero(t, result.ID)

	// The committed booking is still readable.
	got, err := svc.GetBooking(ctx, result.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, result.ID, got.ID)
}

func TestOccupiedSeats_Idempotent(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitBooking(ctx, 7, 1, []model.Seat{{Row: 2, Col: 3}, {Row: 1, Col: 1}}, TicketCounts{Adult: 2})
	require.NoError(t, err)

	first, err := svc.OccupiedSeats(ctx, 1)
	require.NoError(t, err)
	second, err := svc.OccupiedSeats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOccupiedSeats_UnknownShowtime(t *testing.T) {
	svc := newTestService(newFakeBookingStore(), nil)
	_, err := svc.OccupiedSeats(context.Background(), 42)
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}

func TestQuoteForShowtime(t *testing.T) {
	svc := newTestService(newFakeBookingStore(), nil)
	q, err := svc.QuoteForShowtime(context.Background(), 1, TicketCounts{Adult: 1, Senior: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), q.TotalCents)
	assert.Empty(t, q.Promo)
}

func TestGetBooking_WrongUserLooksMissing(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	result, err := svc.SubmitBooking(ctx, 7, 1, []model.Seat{{Row: 1, Col: 1}}, TicketCounts{Adult: 1})
	require.NoError(t, err)

	_, err = svc.GetBooking(ctx, result.ID, 8)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
