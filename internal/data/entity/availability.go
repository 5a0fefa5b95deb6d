package entity

import (
	"time"

	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
)

// DayAvailability is one vendor day with its ordered slot set. Per-day rows keep
// lookups and replacements simple. A day with no row, or no available slot, is fully
// booked.
type DayAvailability struct {
	VendorID  uuid.UUID                  `db:"vendor_id"`
	Date      string                     `db:"date"`
	Slots     []booking.AvailabilitySlot `db:"slots"`
	UpdatedAt time.Time                  `db:"updated_at"`
}
