package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/usecase"
	"marketplace-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// CreateListing handles POST /api/vendor/listings (vendor)
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "success", listing)
}

// PublishListing handles PUT /api/vendor/listings/{id}/publish (vendor)
func (h *ListingHandler) PublishListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	var req request.PublishListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	listing, err := h.service.SetListingPublished(r.Context(), userID.String(), listingID, req.IsPublished)
	if err != nil {
		h.handleServiceError(w, err, "publish listing")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// GetListing handles GET /api/listings/{id} (public)
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	listing, err := h.service.GetListing(r.Context(), listingID)
	if err != nil {
		h.handleServiceError(w, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// GetVendorListings handles GET /api/vendor/listings (vendor)
func (h *ListingHandler) GetVendorListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listings, err := h.service.GetVendorListings(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get vendor listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// PublishAvailability handles PUT /api/vendor/availability (vendor)
func (h *ListingHandler) PublishAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PublishAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	day, err := h.service.PublishAvailability(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "publish availability")
		return
	}

	utils.ResponseSuccess(w, "success", day)
}

// GetAvailability handles GET /api/vendors/{id}/availability?from=...&to=... (public)
func (h *ListingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		utils.ResponseBadRequest(w, "Vendor ID is required", nil)
		return
	}

	query := r.URL.Query()
	fromDate := query.Get("from")
	toDate := query.Get("to")
	if fromDate == "" {
		fromDate = time.Now().Format("2006-01-02")
	}
	if toDate == "" {
		toDate = time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	}

	days, err := h.service.GetAvailability(r.Context(), vendorID, fromDate, toDate)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", days)
}

// PublishTerms handles PUT /api/vendor/terms (vendor)
func (h *ListingHandler) PublishTerms(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PublishTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	policy, err := h.service.PublishTerms(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "publish terms")
		return
	}

	utils.ResponseSuccess(w, "success", policy)
}

// GetPolicy handles GET /api/vendors/{id}/terms (public)
func (h *ListingHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		utils.ResponseBadRequest(w, "Vendor ID is required", nil)
		return
	}

	policy, err := h.service.GetPolicy(r.Context(), vendorID)
	if err != nil {
		h.handleServiceError(w, err, "get cancellation policy")
		return
	}

	utils.ResponseSuccess(w, "success", policy)
}

// handleServiceError handles errors untuk listing operations
func (h *ListingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "out of range"),
		strings.Contains(errMsg, "exceeds"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
