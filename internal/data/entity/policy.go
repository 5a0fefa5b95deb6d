package entity

import (
	"time"

	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
)

// CancellationPolicy is a vendor's published tiered cancellation terms. One row per
// vendor; publishing replaces the whole table of terms.
type CancellationPolicy struct {
	VendorID  uuid.UUID                  `db:"vendor_id"`
	Terms     []booking.CancellationTerm `db:"terms"`
	UpdatedAt time.Time                  `db:"updated_at"`
}
