package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/dto/response"
	"marketplace-booking/internal/usecase"
	"marketplace-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Quote handles POST /api/quote (public)
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "quote selection")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Create(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetUserBookings handles GET /api/user/bookings (customer)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{}
	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.GetCustomerBookings(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (customer)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := h.service.Cancel(r.Context(), userID.String(), bookingID, time.Now())
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// RecordPayment handles POST /api/bookings/{id}/pay (customer)
func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	// Body is optional, an empty payment carries no gateway reference
	var req request.RecordPaymentRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.service.RecordPayment(r.Context(), userID.String(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "record payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// RefundPreview handles GET /api/bookings/{id}/refund-preview (customer)
func (h *BookingHandler) RefundPreview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	preview, err := h.service.RefundPreview(r.Context(), userID.String(), bookingID, time.Now())
	if err != nil {
		h.handleServiceError(w, err, "preview refund")
		return
	}

	utils.ResponseSuccess(w, "success", preview)
}

// ==================== VENDOR METHODS ====================

// GetVendorBookings handles GET /api/vendor/bookings (vendor)
func (h *BookingHandler) GetVendorBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{}
	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.GetVendorPending(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get vendor bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// AcceptBooking handles POST /api/vendor/bookings/{id}/accept (vendor)
func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Accept, "accept booking")
}

// RejectBooking handles POST /api/vendor/bookings/{id}/reject (vendor)
func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject, "reject booking")
}

func (h *BookingHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, vendorID, bookingID string) (*response.BookingResponse, error),
	operation string,
) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := op(r.Context(), userID.String(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ==================== ADMIN METHODS ====================

// GetBookingByID handles GET /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// handleServiceError maps service errors to HTTP responses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, booking.ErrInvalidStateTransition):
		h.log.Warn(operation+" failed - state conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, booking.ErrDuplicateActiveRequest):
		h.log.Warn(operation+" failed - duplicate active request",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, booking.ErrPaymentNotAllowed):
		h.log.Warn(operation+" failed - payment not allowed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, booking.ErrSlotUnavailable):
		h.log.Warn(operation+" failed - slot unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, booking.ErrEmptySelection),
		errors.Is(err, booking.ErrQuantityOutOfRange),
		errors.Is(err, booking.ErrInvalidCustomization),
		errors.Is(err, booking.ErrMissingRequiredCustomization),
		errors.Is(err, booking.ErrItemNotInCatalog),
		errors.Is(err, booking.ErrPackageNotInCatalog):
		h.log.Warn(operation+" failed - invalid selection",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "not published"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
