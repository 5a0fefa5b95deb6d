package response

import (
	"time"

	"marketplace-booking/internal/data/entity"
)

type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	About     *string   `json:"about,omitempty"`
	City      *string   `json:"city,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func VendorToResponse(vendor *entity.Vendor) VendorResponse {
	return VendorResponse{
		ID:        vendor.ID.String(),
		Name:      vendor.Name,
		Email:     vendor.Email,
		Phone:     vendor.Phone,
		About:     vendor.About,
		City:      vendor.City,
		IsActive:  vendor.IsActive,
		CreatedAt: vendor.CreatedAt,
	}
}
