package entity

import (
	"github.com/google/uuid"
)

// Payment records the outcome the payment collaborator reported for a booking
// request. Amounts are in the smallest currency unit. The gateway conversation itself
// happens outside this service; at most one payment row exists per request.
type Payment struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	Amount     int64     `db:"amount"`
	GatewayRef *string   `db:"gateway_ref"`
}
