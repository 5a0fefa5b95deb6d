package adaptor

import (
	"marketplace-booking/internal/usecase"

	"go.uber.org/zap"
)

// Handler aggregates all HTTP handlers
type Handler struct {
	Booking *BookingHandler
	Listing *ListingHandler
	Vendor  *VendorHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Listing: NewListingHandler(service.Listing, log),
		Vendor:  NewVendorHandler(service.Vendor, log),
	}
}
