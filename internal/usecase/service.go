package usecase

import (
	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/notify"
	"marketplace-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Listing ListingService
	Vendor  VendorService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking: NewBookingService(repo, notifier, log),
		Listing: NewListingService(repo, log),
		Vendor:  NewVendorService(repo.Vendor, log),
	}
}
