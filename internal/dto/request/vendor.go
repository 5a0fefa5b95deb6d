package request

type UpdateVendorProfileRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	About *string `json:"about,omitempty" validate:"omitempty,max=2000"`
	City  *string `json:"city,omitempty" validate:"omitempty,max=120"`
}
