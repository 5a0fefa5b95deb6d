package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"marketplace-booking/internal/dto/request"
	"marketplace-booking/internal/usecase"
	"marketplace-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VendorHandler struct {
	service usecase.VendorService
	log     *zap.Logger
}

func NewVendorHandler(service usecase.VendorService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log.With(zap.String("handler", "vendor")),
	}
}

// UpdateProfile handles PUT /api/vendor/profile (vendor)
func (h *VendorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateVendorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	vendor, err := h.service.UpdateProfile(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update vendor profile")
		return
	}

	utils.ResponseSuccess(w, "success", vendor)
}

// GetVendor handles GET /api/vendors/{id} (public)
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		utils.ResponseBadRequest(w, "Vendor ID is required", nil)
		return
	}

	vendor, err := h.service.GetVendor(r.Context(), vendorID)
	if err != nil {
		h.handleServiceError(w, err, "get vendor")
		return
	}

	utils.ResponseSuccess(w, "success", vendor)
}

func (h *VendorHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
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
