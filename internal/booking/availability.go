package booking

// AvailabilitySlot is one published booking window of a vendor's day. Date uses the
// "2006-01-02" layout, TimeLabel is the vendor's display label for the window (e.g.
// "9:00 AM - 10:30 AM").
type AvailabilitySlot struct {
	Date      string `json:"date"`
	TimeLabel string `json:"time_label"`
	Available bool   `json:"available"`
}

// SlotAvailable reports whether a slot exists for the given date matching the given
// time label with Available set. A day absent from the published table is closed, not
// negotiable. Pure lookup, no mutation: marking a slot consumed after a booking is
// confirmed is the store's responsibility, not this function's.
func SlotAvailable(slots []AvailabilitySlot, date, timeLabel string) bool {
	for _, slot := range slots {
		if slot.Date == date && slot.TimeLabel == timeLabel {
			return slot.Available
		}
	}
	return false
}
