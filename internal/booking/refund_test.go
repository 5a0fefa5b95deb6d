package booking_test

import (
	"testing"
	"time"

	"marketplace-booking/internal/booking"

	"github.com/stretchr/testify/assert"
)

func tieredTerms() []booking.CancellationTerm {
	return []booking.CancellationTerm{
		{DaysBeforeEvent: 30, RefundPercentage: 90},
		{DaysBeforeEvent: 15, RefundPercentage: 75},
		{DaysBeforeEvent: 7, RefundPercentage: 50},
	}
}

func TestRefundPercentage_Thresholds(t *testing.T) {
	terms := tieredTerms()

	assert.Equal(t, 90, booking.RefundPercentage(terms, 45))
	assert.Equal(t, 90, booking.RefundPercentage(terms, 30))
	assert.Equal(t, 75, booking.RefundPercentage(terms, 20))
	assert.Equal(t, 50, booking.RefundPercentage(terms, 7))
	// Below every threshold: no catch-all means no refund.
	assert.Equal(t, 0, booking.RefundPercentage(terms, 3))
	assert.Equal(t, 0, booking.RefundPercentage(terms, 0))
}

func TestRefundPercentage_UnsortedTerms(t *testing.T) {
	terms := []booking.CancellationTerm{
		{DaysBeforeEvent: 7, RefundPercentage: 50},
		{DaysBeforeEvent: 30, RefundPercentage: 90},
		{DaysBeforeEvent: 15, RefundPercentage: 75},
	}
	assert.Equal(t, 75, booking.RefundPercentage(terms, 20))
}

func TestRefundPercentage_EventPassed(t *testing.T) {
	assert.Equal(t, 0, booking.RefundPercentage(tieredTerms(), -1))
}

func TestRefundPercentage_NoTerms(t *testing.T) {
	assert.Equal(t, 0, booking.RefundPercentage(nil, 60))
	assert.Equal(t, 0, booking.RefundPercentage([]booking.CancellationTerm{}, 60))
}

func TestRefundPercentage_NonIncreasingAsLeadTimeShrinks(t *testing.T) {
	terms := tieredTerms()
	prev := booking.RefundPercentage(terms, 60)
	for days := 59; days >= -5; days-- {
		cur := booking.RefundPercentage(terms, days)
		assert.LessOrEqual(t, cur, prev, "refund increased at %d days", days)
		prev = cur
	}
}

func TestDaysBetween(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 20, booking.DaysBetween(asOf, asOf.AddDate(0, 0, 20)))
	assert.Equal(t, 0, booking.DaysBetween(asOf, asOf.Add(12*time.Hour)))
	assert.Equal(t, -3, booking.DaysBetween(asOf, asOf.AddDate(0, 0, -3)))
}
