package wire

import (
	"marketplace-booking/internal/adaptor"
	"marketplace-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/quote - Price a selection without creating a booking
	r.Post("/api/quote", bookingHandler.Quote)

	// ==================== CUSTOMER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleCustomer, log))

		// POST /api/bookings - Create new booking request
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// POST /api/bookings/{id}/cancel - Cancel own booking
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// POST /api/bookings/{id}/pay - Record payment for accepted booking
		r.Post("/api/bookings/{id}/pay", bookingHandler.RecordPayment)

		// GET /api/bookings/{id}/refund-preview - Preview refund before cancelling
		r.Get("/api/bookings/{id}/refund-preview", bookingHandler.RefundPreview)
	})

	// ==================== VENDOR ROUTES ====================
	r.Route("/api/vendor/bookings", func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleVendor, log))

		// GET /api/vendor/bookings - Pending requests inbox
		r.Get("/", bookingHandler.GetVendorBookings)

		// POST /api/vendor/bookings/{id}/accept - Accept a pending request
		r.Post("/{id}/accept", bookingHandler.AcceptBooking)

		// POST /api/vendor/bookings/{id}/reject - Reject a pending request
		r.Post("/{id}/reject", bookingHandler.RejectBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleAdmin, log))

		// GET /api/admin/bookings/{id} - View any booking details (admin)
		r.Get("/{id}", bookingHandler.GetBookingByID)
	})
}
