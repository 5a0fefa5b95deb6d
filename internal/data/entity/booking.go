package entity

import (
	"time"

	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
)

// BookingRequest is the aggregate root of the booking lifecycle. Selection and the
// priced quote are frozen at creation time; catalog edits never reprice a placed
// request. Rejected and cancelled requests are kept as terminal records for history,
// never deleted.
type BookingRequest struct {
	Base
	Reference      string             `db:"reference"`
	CustomerID     uuid.UUID          `db:"customer_id"`
	VendorID       uuid.UUID          `db:"vendor_id"`
	ListingID      uuid.UUID          `db:"listing_id"`
	Selection      booking.Selection  `db:"selection"`
	LineItems      []booking.LineItem `db:"line_items"`
	TotalPrice     int64              `db:"total_price"`
	EventDate      time.Time          `db:"event_date"`
	TimeLabel      string             `db:"time_label"`
	Status         booking.Status     `db:"status"`
	CanMakePayment bool               `db:"can_make_payment"`

	// RefundPercentage is set once when the request is cancelled, nil otherwise.
	RefundPercentage *int `db:"refund_percentage"`
}
