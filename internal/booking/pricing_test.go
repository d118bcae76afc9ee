package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-06-03 was a Tuesday, 2025-06-04 a Wednesday, 2025-06-06 a Friday.
var (
	tuesday   = time.Date(2025, 6, 3, 20, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 6, 4, 20, 0, 0, 0, time.UTC)
	friday    = time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC)
)

func TestComputeQuote_TuesdayHalfPrice(t *testing.T) {
	q := ComputeQuote(1500, tuesday, TicketCounts{Adult: 1, Child: 1})

	assert.Equal(t, int64(750), q.UnitAdultCents)
	assert.Equal(t, int64(675), q.UnitChildCents)
	assert.Equal(t, int64(600), q.UnitSeniorCents)
	assert.Equal(t, int64(1425), q.TotalCents)
	assert.Equal(t, PromoHalfPrice, q.Promo)
}

func TestComputeQuote_WednesdayHalfPrice(t *testing.T) {
	q := ComputeQuote(1000, wednesday, TicketCounts{Adult: 1})

	assert.Equal(t, int64(500), q.TotalCents)
	assert.Equal(t, PromoHalfPrice, q.Promo)
}

func TestComputeQuote_RegularDay(t *testing.T) {
	q := ComputeQuote(1000, friday, TicketCounts{Adult: 2})

	assert.Equal(t, int64(1000), q.UnitAdultCents)
	assert.Equal(t, int64(2000), q.TotalCents)
	assert.Empty(t, q.Promo)
}

func TestComputeQuote_TypeDiscounts(t *testing.T) {
	q := ComputeQuote(1000, friday, TicketCounts{Adult: 1, Child: 1, Senior: 1})

	assert.Equal(t, int64(900), q.UnitChildCents)
	assert.Equal(t, int64(800), q.UnitSeniorCents)
	assert.Equal(t, int64(2700), q.TotalCents)
}

func TestComputeQuote_RoundsUnitPrices(t *testing.T) {
	// 999 * 0.9 = 899.1 and 999 * 0.8 = 799.2 round down;
	// 999 * 0.45 = 449.55 rounds up.
	q := ComputeQuote(999, friday, TicketCounts{Child: 1, Senior: 1})
	assert.Equal(t, int64(899), q.UnitChildCents)
	assert.Equal(t, int64(799), q.UnitSeniorCents)

	q = ComputeQuote(999, tuesday, TicketCounts{Child: 1})
	assert.Equal(t, int64(450), q.UnitChildCents)
}

func TestComputeQuote_ZeroCounts(t *testing.T) {
	q := ComputeQuote(1500, tuesday, TicketCounts{})
	assert.Equal(t, int64(0), q.TotalCents)
}

func TestComputeQuote_Deterministic(t *testing.T) {
	a := ComputeQuote(1500, tuesday, TicketCounts{Adult: 1, Child: 1})
	b := ComputeQuote(1500, tuesday, TicketCounts{Adult: 1, Child: 1})
	assert.Equal(t, a, b)
}
