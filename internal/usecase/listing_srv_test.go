package usecase_test

import (
	"context"
	"testing"

	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newListingService() (usecase.ListingService, *repository.Repository) {
	repo := &repository.Repository{
		Vendor:       newFakeVendorRepo(),
		Listing:      newFakeListingRepo(),
		Availability: newFakeAvailabilityRepo(),
		Policy:       newFakePolicyRepo(),
		Booking:      newFakeBookingRepo(),
		Payment:      newFakePaymentRepo(),
	}
	return usecase.NewListingService(repo, zap.NewNop()), repo
}

func validListingRequest() *request.CreateListingRequest {
	return &request.CreateListingRequest{
		Title:    "Wedding essentials",
		Category: "events",
		Items: []request.CatalogItemRequest{
			{Name: "Decoration", UnitPrice: 100000},
			{Name: "Catering", UnitPrice: 70000, MinQuantity: 10, MaxQuantity: 200},
		},
		Packages: []request.PackageRequest{
			{Name: "Full day", Price: 150000, ItemIndexes: []int{0, 1}},
		},
		IsPublished: true,
	}
}

func TestCreateListing_ComputesPackageSavings(t *testing.T) {
	service, _ := newListingService()

	resp, err := service.CreateListing(context.Background(), uuid.New().String(), validListingRequest())

	require.NoError(t, err)
	require.Len(t, resp.Catalog.Packages, 1)
	assert.Equal(t, int64(20000), resp.Catalog.Packages[0].Savings)
	assert.Len(t, resp.Catalog.Packages[0].ItemIDs, 2)
}

func TestCreateListing_PackageOverpriced(t *testing.T) {
	service, _ := newListingService()

	req := validListingRequest()
	req.Packages[0].Price = 200000
	_, err := service.CreateListing(context.Background(), uuid.New().String(), req)

	assert.ErrorContains(t, err, "exceeds the sum of its items")
}

func TestCreateListing_PackageIndexOutOfRange(t *testing.T) {
	service, _ := newListingService()

	req := validListingRequest()
	req.Packages[0].ItemIndexes = []int{0, 5}
	_, err := service.CreateListing(context.Background(), uuid.New().String(), req)

	assert.ErrorContains(t, err, "out of range")
}

func TestCreateListing_QuantityBoundsInverted(t *testing.T) {
	service, _ := newListingService()

	req := validListingRequest()
	req.Items[1].MinQuantity = 50
	req.Items[1].MaxQuantity = 10
	_, err := service.CreateListing(context.Background(), uuid.New().String(), req)

	assert.ErrorContains(t, err, "exceeds max quantity")
}

func TestSetListingPublished(t *testing.T) {
	service, _ := newListingService()
	vendorID := uuid.New().String()

	created, err := service.CreateListing(context.Background(), vendorID, validListingRequest())
	require.NoError(t, err)

	unpublished, err := service.SetListingPublished(context.Background(), vendorID, created.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)

	// Another vendor cannot touch it
	_, err = service.SetListingPublished(context.Background(), uuid.New().String(), created.ID, true)
	assert.ErrorContains(t, err, "unauthorized")
}

func TestPublishAvailability_ReplacesDay(t *testing.T) {
	service, _ := newListingService()
	vendorID := uuid.New().String()

	day, err := service.PublishAvailability(context.Background(), vendorID, &request.PublishAvailabilityRequest{
		Date: "2026-10-05",
		Slots: []request.SlotRequest{
			{TimeLabel: "morning", Available: true},
			{TimeLabel: "evening", Available: true},
		},
	})
	require.NoError(t, err)
	assert.Len(t, day.Slots, 2)

	// Re-publishing with no slots closes the whole day
	day, err = service.PublishAvailability(context.Background(), vendorID, &request.PublishAvailabilityRequest{
		Date: "2026-10-05",
	})
	require.NoError(t, err)
	assert.Empty(t, day.Slots)

	days, err := service.GetAvailability(context.Background(), vendorID, "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Slots)
}

func TestPublishTerms_RoundTrip(t *testing.T) {
	service, _ := newListingService()
	vendorID := uuid.New().String()

	_, err := service.PublishTerms(context.Background(), vendorID, &request.PublishTermsRequest{
		Terms: []request.CancellationTermRequest{
			{DaysBeforeEvent: 30, RefundPercentage: 90},
			{DaysBeforeEvent: 7, RefundPercentage: 50},
		},
	})
	require.NoError(t, err)

	policy, err := service.GetPolicy(context.Background(), vendorID)
	require.NoError(t, err)
	assert.Len(t, policy.Terms, 2)
}

func TestGetPolicy_DefaultsToNoRefund(t *testing.T) {
	service, _ := newListingService()

	policy, err := service.GetPolicy(context.Background(), uuid.New().String())

	require.NoError(t, err)
	assert.Empty(t, policy.Terms)
}
