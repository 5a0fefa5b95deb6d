package booking

import (
	"sort"
	"time"
)

// CancellationTerm is one tier of a vendor's cancellation policy: cancelling at least
// DaysBeforeEvent days ahead of the event refunds RefundPercentage of the price.
type CancellationTerm struct {
	DaysBeforeEvent  int `json:"days_before_event"`
	RefundPercentage int `json:"refund_percentage"`
}

// RefundPercentage resolves the applicable refund percentage for a cancellation made
// daysBeforeEvent days ahead of the event.
//
// Terms are thresholds: the applicable term is the one with the largest
// DaysBeforeEvent that is still <= the actual lead time. When the lead time falls
// below every threshold, or is negative because the event already passed, or the
// terms list is empty, the refund is zero. The policy author not providing a
// catch-all means no refund, so this function never errors.
func RefundPercentage(terms []CancellationTerm, daysBeforeEvent int) int {
	if daysBeforeEvent < 0 || len(terms) == 0 {
		return 0
	}

	sorted := make([]CancellationTerm, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DaysBeforeEvent > sorted[j].DaysBeforeEvent
	})

	for _, term := range sorted {
		if term.DaysBeforeEvent <= daysBeforeEvent {
			return term.RefundPercentage
		}
	}
	return 0
}

// DaysBetween returns the whole number of days from asOf to the event date. Partial
// days truncate toward zero, and an event earlier than asOf yields a negative count.
func DaysBetween(asOf, eventDate time.Time) int {
	return int(eventDate.Sub(asOf) / (24 * time.Hour))
}
