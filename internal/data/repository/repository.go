package repository

import (
	"marketplace-booking/pkg/cache"
	"marketplace-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Vendor       VendorRepository
	Listing      ListingRepository
	Availability AvailabilityRepository
	Policy       PolicyRepository
	Booking      BookingRepository
	Payment      PaymentRepository
}

func NewRepository(db database.PgxIface, cache *cache.Client, log *zap.Logger) *Repository {
	return &Repository{
		Vendor:       NewVendorRepository(db, log),
		Listing:      NewListingRepository(db, log),
		Availability: NewAvailabilityRepository(db, cache, log),
		Policy:       NewPolicyRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
	}
}
