package entity

import (
	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
)

// Listing is a vendor's sellable offering. The catalog (items, customizations,
// packages) is stored as a single JSONB document: bookings snapshot their own copy of
// the priced selection, so later edits here never change an already placed booking.
type Listing struct {
	Base
	VendorID    uuid.UUID       `db:"vendor_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Catalog     booking.Catalog `db:"catalog"`
	IsPublished bool            `db:"is_published"`
}
