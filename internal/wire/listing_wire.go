package wire

import (
	"marketplace-booking/internal/adaptor"
	"marketplace-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireListing(r chi.Router, listingHandler *adaptor.ListingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/listings/{id} - Browse a listing and its catalog
	r.Get("/api/listings/{id}", listingHandler.GetListing)

	// GET /api/vendors/{id}/availability - Published availability calendar
	r.Get("/api/vendors/{id}/availability", listingHandler.GetAvailability)

	// GET /api/vendors/{id}/terms - Published cancellation terms
	r.Get("/api/vendors/{id}/terms", listingHandler.GetPolicy)

	// ==================== VENDOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleVendor, log))

		// POST /api/vendor/listings - Create listing with catalog
		r.Post("/api/vendor/listings", listingHandler.CreateListing)

		// GET /api/vendor/listings - Own listings, published or not
		r.Get("/api/vendor/listings", listingHandler.GetVendorListings)

		// PUT /api/vendor/listings/{id}/publish - Toggle listing visibility
		r.Put("/api/vendor/listings/{id}/publish", listingHandler.PublishListing)

		// PUT /api/vendor/availability - Publish a day's slots
		r.Put("/api/vendor/availability", listingHandler.PublishAvailability)

		// PUT /api/vendor/terms - Publish cancellation terms
		r.Put("/api/vendor/terms", listingHandler.PublishTerms)
	})
}
