package usecase

import (
	"context"
	"fmt"
	"time"

	"marketplace-booking/internal/data/entity"
	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/dto/response"
	"marketplace-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VendorService interface {
	UpdateProfile(ctx context.Context, vendorID string, req *request.UpdateVendorProfileRequest) (*response.VendorResponse, error)
	GetVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error)
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	log        *zap.Logger
}

func NewVendorService(vendorRepo repository.VendorRepository, log *zap.Logger) VendorService {
	return &vendorService{
		vendorRepo: vendorRepo,
		log:        log.With(zap.String("service", "vendor")),
	}
}

// UpdateProfile creates or refreshes the vendor's marketplace profile. The vendor ID
// comes from the identity headers, so a first write acts as registration.
func (s *vendorService) UpdateProfile(ctx context.Context, vendorID string, req *request.UpdateVendorProfileRequest) (*response.VendorResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update vendor profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	now := time.Now()
	vendor := &entity.Vendor{
		Base: entity.Base{
			ID:        vendorUUID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		About:    req.About,
		City:     req.City,
		IsActive: true,
	}

	if err := s.vendorRepo.Upsert(ctx, vendor); err != nil {
		s.log.Error("Failed to upsert vendor profile",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("update vendor profile: %w", err)
	}

	s.log.Info("Vendor profile updated", zap.String("vendor_id", vendorID))

	resp := response.VendorToResponse(vendor)
	return &resp, nil
}

func (s *vendorService) GetVendor(ctx context.Context, vendorID string) (*response.VendorResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorUUID)
	if err != nil {
		return nil, fmt.Errorf("look up vendor: %w", err)
	}
	if vendor == nil {
		return nil, fmt.Errorf("vendor %s not found", vendorID)
	}

	resp := response.VendorToResponse(vendor)
	return &resp, nil
}
