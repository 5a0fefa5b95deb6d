package response

import (
	"time"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/data/entity"
)

type ListingResponse struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendor_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Catalog     booking.Catalog `json:"catalog"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
}

type DayAvailabilityResponse struct {
	Date  string                     `json:"date"`
	Slots []booking.AvailabilitySlot `json:"slots"`
}

type CancellationPolicyResponse struct {
	VendorID  string                     `json:"vendor_id"`
	Terms     []booking.CancellationTerm `json:"terms"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Helper converters
func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:          listing.ID.String(),
		VendorID:    listing.VendorID.String(),
		Title:       listing.Title,
		Description: listing.Description,
		Category:    listing.Category,
		Catalog:     listing.Catalog,
		IsPublished: listing.IsPublished,
		CreatedAt:   listing.CreatedAt,
	}
}

func DayToResponse(day *entity.DayAvailability) DayAvailabilityResponse {
	return DayAvailabilityResponse{
		Date:  day.Date,
		Slots: day.Slots,
	}
}

func PolicyToResponse(policy *entity.CancellationPolicy) CancellationPolicyResponse {
	return CancellationPolicyResponse{
		VendorID:  policy.VendorID.String(),
		Terms:     policy.Terms,
		UpdatedAt: policy.UpdatedAt,
	}
}
