package wire

import (
	"marketplace-booking/internal/adaptor"
	"marketplace-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVendor(r chi.Router, vendorHandler *adaptor.VendorHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/vendors/{id} - Public vendor profile
	r.Get("/api/vendors/{id}", vendorHandler.GetVendor)

	// ==================== VENDOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleVendor, log))

		// PUT /api/vendor/profile - Create or update own profile
		r.Put("/api/vendor/profile", vendorHandler.UpdateProfile)
	})
}
