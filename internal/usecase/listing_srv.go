package usecase

import (
	"context"
	"fmt"
	"time"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/data/entity"
	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/dto/response"
	"marketplace-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	CreateListing(ctx context.Context, vendorID string, req *request.CreateListingRequest) (*response.ListingResponse, error)
	SetListingPublished(ctx context.Context, vendorID, listingID string, published bool) (*response.ListingResponse, error)
	GetListing(ctx context.Context, listingID string) (*response.ListingResponse, error)
	GetVendorListings(ctx context.Context, vendorID string) ([]response.ListingResponse, error)

	PublishAvailability(ctx context.Context, vendorID string, req *request.PublishAvailabilityRequest) (*response.DayAvailabilityResponse, error)
	GetAvailability(ctx context.Context, vendorID, fromDate, toDate string) ([]response.DayAvailabilityResponse, error)

	PublishTerms(ctx context.Context, vendorID string, req *request.PublishTermsRequest) (*response.CancellationPolicyResponse, error)
	GetPolicy(ctx context.Context, vendorID string) (*response.CancellationPolicyResponse, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) CreateListing(ctx context.Context, vendorID string, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	catalog, err := buildCatalog(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &entity.Listing{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VendorID:    vendorUUID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Catalog:     catalog,
		IsPublished: req.IsPublished,
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		s.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("vendor_id", vendorID),
		zap.Int("items", len(catalog.Items)),
		zap.Int("packages", len(catalog.Packages)),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

// buildCatalog materializes the request's items and packages into domain catalog
// types, rejecting packages that do not undercut buying their items separately.
func buildCatalog(req *request.CreateListingRequest) (booking.Catalog, error) {
	catalog := booking.Catalog{
		Items:    make([]booking.CatalogItem, len(req.Items)),
		Packages: make([]booking.Package, 0, len(req.Packages)),
	}

	for i, item := range req.Items {
		if item.MaxQuantity > 0 && item.MinQuantity > item.MaxQuantity {
			return booking.Catalog{}, fmt.Errorf("item %q: min quantity %d exceeds max quantity %d", item.Name, item.MinQuantity, item.MaxQuantity)
		}

		customizations := make([]booking.Customization, len(item.Customizations))
		for j, c := range item.Customizations {
			customizations[j] = booking.Customization{
				ID:       uuid.New(),
				Name:     c.Name,
				Price:    c.Price,
				Required: c.Required,
			}
		}
		catalog.Items[i] = booking.CatalogItem{
			ID:             uuid.New(),
			Name:           item.Name,
			UnitPrice:      item.UnitPrice,
			MinQuantity:    item.MinQuantity,
			MaxQuantity:    item.MaxQuantity,
			Customizations: customizations,
		}
	}

	for _, p := range req.Packages {
		itemIDs := make([]uuid.UUID, len(p.ItemIndexes))
		for j, idx := range p.ItemIndexes {
			if idx >= len(catalog.Items) {
				return booking.Catalog{}, fmt.Errorf("package %q: item index %d out of range", p.Name, idx)
			}
			itemIDs[j] = catalog.Items[idx].ID
		}

		pkg := booking.Package{
			ID:      uuid.New(),
			Name:    p.Name,
			Price:   p.Price,
			ItemIDs: itemIDs,
		}
		savings := catalog.SavingsFor(pkg)
		if savings < 0 {
			return booking.Catalog{}, fmt.Errorf("package %q: price %d exceeds the sum of its items", p.Name, p.Price)
		}
		pkg.Savings = savings
		catalog.Packages = append(catalog.Packages, pkg)
	}

	return catalog, nil
}

// SetListingPublished flips a listing's visibility. Unpublishing stops new bookings;
// requests already placed keep their frozen price and continue through the lifecycle.
func (s *listingService) SetListingPublished(ctx context.Context, vendorID, listingID string, published bool) (*response.ListingResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", listingID, err)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s not found", listingID)
	}
	if listing.VendorID != vendorUUID {
		return nil, fmt.Errorf("unauthorized to modify this listing")
	}

	listing.IsPublished = published
	listing.UpdatedAt = time.Now()
	if err := s.repo.Listing.Update(ctx, listing); err != nil {
		s.log.Error("Failed to update listing",
			zap.Error(err),
			zap.String("listing_id", listingID),
		)
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.log.Info("Listing visibility changed",
		zap.String("listing_id", listingID),
		zap.Bool("published", published),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) GetListing(ctx context.Context, listingID string) (*response.ListingResponse, error) {
	id, err := uuid.Parse(listingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", listingID, err)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s not found", listingID)
	}

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) GetVendorListings(ctx context.Context, vendorID string) ([]response.ListingResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	listings, err := s.repo.Listing.FindByVendorID(ctx, vendorUUID)
	if err != nil {
		s.log.Error("Failed to get vendor listings",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("get vendor listings: %w", err)
	}

	responses := make([]response.ListingResponse, len(listings))
	for i, l := range listings {
		responses[i] = response.ListingToResponse(l)
	}
	return responses, nil
}

func (s *listingService) PublishAvailability(ctx context.Context, vendorID string, req *request.PublishAvailabilityRequest) (*response.DayAvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Publish availability validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	slots := make([]booking.AvailabilitySlot, len(req.Slots))
	for i, slot := range req.Slots {
		slots[i] = booking.AvailabilitySlot{
			Date:      req.Date,
			TimeLabel: slot.TimeLabel,
			Available: slot.Available,
		}
	}

	day := &entity.DayAvailability{
		VendorID:  vendorUUID,
		Date:      req.Date,
		Slots:     slots,
		UpdatedAt: time.Now(),
	}

	// ReplaceDay overwrites the whole day: publishing an empty slot list closes it.
	if err := s.repo.Availability.ReplaceDay(ctx, day); err != nil {
		s.log.Error("Failed to publish availability",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("publish availability: %w", err)
	}

	s.log.Info("Availability published",
		zap.String("vendor_id", vendorID),
		zap.String("date", req.Date),
		zap.Int("slots", len(slots)),
	)

	resp := response.DayToResponse(day)
	return &resp, nil
}

func (s *listingService) GetAvailability(ctx context.Context, vendorID, fromDate, toDate string) ([]response.DayAvailabilityResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	for _, d := range []string{fromDate, toDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid date %s: %w", d, err)
		}
	}

	days, err := s.repo.Availability.FindRange(ctx, vendorUUID, fromDate, toDate)
	if err != nil {
		s.log.Error("Failed to get availability range",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("get availability: %w", err)
	}

	responses := make([]response.DayAvailabilityResponse, len(days))
	for i, day := range days {
		responses[i] = response.DayToResponse(day)
	}
	return responses, nil
}

func (s *listingService) PublishTerms(ctx context.Context, vendorID string, req *request.PublishTermsRequest) (*response.CancellationPolicyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Publish terms validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	terms := make([]booking.CancellationTerm, len(req.Terms))
	for i, t := range req.Terms {
		terms[i] = booking.CancellationTerm{
			DaysBeforeEvent:  t.DaysBeforeEvent,
			RefundPercentage: t.RefundPercentage,
		}
	}

	policy := &entity.CancellationPolicy{
		VendorID:  vendorUUID,
		Terms:     terms,
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Policy.Replace(ctx, policy); err != nil {
		s.log.Error("Failed to publish cancellation terms",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("publish cancellation terms: %w", err)
	}

	s.log.Info("Cancellation terms published",
		zap.String("vendor_id", vendorID),
		zap.Int("terms", len(terms)),
	)

	resp := response.PolicyToResponse(policy)
	return &resp, nil
}

func (s *listingService) GetPolicy(ctx context.Context, vendorID string) (*response.CancellationPolicyResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	policy, err := s.repo.Policy.FindByVendorID(ctx, vendorUUID)
	if err != nil {
		return nil, fmt.Errorf("look up cancellation policy: %w", err)
	}
	if policy == nil {
		// An unpublished policy reads as no refund at any horizon.
		policy = &entity.CancellationPolicy{
			VendorID: vendorUUID,
			Terms:    []booking.CancellationTerm{},
		}
	}

	resp := response.PolicyToResponse(policy)
	return &resp, nil
}
