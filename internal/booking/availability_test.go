package booking_test

import (
	"testing"

	"marketplace-booking/internal/booking"

	"github.com/stretchr/testify/assert"
)

func TestSlotAvailable(t *testing.T) {
	slots := []booking.AvailabilitySlot{
		{Date: "2025-07-10", TimeLabel: "morning", Available: true},
		{Date: "2025-07-10", TimeLabel: "afternoon", Available: false},
		{Date: "2025-07-11", TimeLabel: "morning", Available: true},
	}

	assert.True(t, booking.SlotAvailable(slots, "2025-07-10", "morning"))
	assert.False(t, booking.SlotAvailable(slots, "2025-07-10", "afternoon"))

	// Unknown label on a published day.
	assert.False(t, booking.SlotAvailable(slots, "2025-07-10", "evening"))

	// A day absent from the table is closed.
	assert.False(t, booking.SlotAvailable(slots, "2025-07-12", "morning"))

	assert.False(t, booking.SlotAvailable(nil, "2025-07-10", "morning"))
}
