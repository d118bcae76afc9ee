package booking

import (
	"math"
	"time"
)

// PromoHalfPrice is the human-readable flag attached to quotes on
// half-price days.
const PromoHalfPrice = "half-price promo"

// Ticket-type multipliers applied on top of the day discount.
const (
	childDiscount  = 0.9 // minors pay 90% of base
	seniorDiscount = 0.8 // seniors pay 80% of base
)

// TicketCounts carries how many tickets of each type a request buys.
// All counts must be non-negative; negative values are rejected at the
// HTTP boundary before pricing runs.
type TicketCounts struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Senior int `json:"senior"`
}

// Total returns the number of tickets across all types.
func (t TicketCounts) Total() int { return t.Adult + t.Child + t.Senior }

// Quote is the result of pricing a set of ticket counts against a
// showtime.  All amounts are integer cents.  The same computation runs
// on the client for display; the server's result is the one persisted.
type Quote struct {
	UnitAdultCents  int64  `json:"unit_adult_cents"`
	UnitChildCents  int64  `json:"unit_child_cents"`
	UnitSeniorCents int64  `json:"unit_senior_cents"`
	TotalCents      int64  `json:"total_cents"`
	Promo           string `json:"promo,omitempty"`
}

// ComputeQuote prices ticket counts for a showtime.  Tuesday and
// Wednesday screenings get a 0.5 day multiplier and the promo flag;
// child and senior tickets get their type discount on top.  Unit
// prices are rounded to the nearest cent before being multiplied by
// their counts, so totals are exact integer arithmetic.  Pure
// function, no side effects.
func ComputeQuote(baseCents int64, startsAt time.Time, counts TicketCounts) Quote {
	day := 1.0
	promo := ""
	switch startsAt.Weekday() {
	case time.Tuesday, time.Wednesday:
		day = 0.5
		promo = PromoHalfPrice
	}

	unitAdult := roundCents(float64(baseCents) * day)
	unitChild := roundCents(float64(baseCents) * childDiscount * day)
	unitSenior := roundCents(float64(baseCents) * seniorDiscount * day)

	total := int64(counts.Adult)*unitAdult +
		int64(counts.Child)*unitChild +
		int64(counts.Senior)*unitSenior

	return Quote{
		UnitAdultCents:  unitAdult,
		UnitChildCents:  unitChild,
		UnitSeniorCents: unitSenior,
		TotalCents:      total,
		Promo:           promo,
	}
}

func roundCents(v float64) int64 { return int64(math.Round(v)) }
