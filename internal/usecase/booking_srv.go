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
	"marketplace-booking/internal/notify"
	"marketplace-booking/pkg/metrics"
	"marketplace-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Quote prices a selection without creating anything, for live previews.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// Customer operations
	Create(ctx context.Context, customerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Cancel(ctx context.Context, customerID, bookingID string, asOf time.Time) (*response.BookingResponse, error)
	RecordPayment(ctx context.Context, customerID, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error)
	RefundPreview(ctx context.Context, customerID, bookingID string, asOf time.Time) (*response.RefundPreviewResponse, error)
	GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Vendor operations
	Accept(ctx context.Context, vendorID, bookingID string) (*response.BookingResponse, error)
	Reject(ctx context.Context, vendorID, bookingID string) (*response.BookingResponse, error)
	GetVendorPending(ctx context.Context, vendorID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", req.ListingID, err)
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("look up listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s not found", req.ListingID)
	}

	sel, err := req.Selection.ToDomain()
	if err != nil {
		return nil, err
	}

	quote, err := booking.ComputePrice(listing.Catalog, sel)
	if err != nil {
		return nil, fmt.Errorf("price selection: %w", err)
	}

	return &response.QuoteResponse{
		ListingID: listing.ID.String(),
		LineItems: quote.LineItems,
		Total:     quote.Total,
	}, nil
}

func (s *bookingService) Create(ctx context.Context, customerID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("invalid listing ID format %s: %w", req.ListingID, err)
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("look up listing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s not found", req.ListingID)
	}
	if !listing.IsPublished {
		return nil, fmt.Errorf("listing %s is not published", req.ListingID)
	}

	sel, err := req.Selection.ToDomain()
	if err != nil {
		return nil, err
	}
	if sel.IsEmpty() {
		return nil, booking.ErrEmptySelection
	}

	// Price is computed once here and frozen. Catalog edits after this point never
	// reprice the request.
	quote, err := booking.ComputePrice(listing.Catalog, sel)
	if err != nil {
		return nil, fmt.Errorf("price selection: %w", err)
	}
	if sel.PackageID == nil && quote.Total == 0 {
		return nil, booking.ErrEmptySelection
	}

	day, err := s.repo.Availability.FindDay(ctx, listing.VendorID, req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	var slots []booking.AvailabilitySlot
	if day != nil {
		slots = day.Slots
	}
	if !booking.SlotAvailable(slots, req.EventDate, req.TimeLabel) {
		return nil, booking.ErrSlotUnavailable
	}

	active, err := s.repo.Booking.FindActiveByParties(ctx, customerUUID, listing.VendorID, listingID)
	if err != nil {
		return nil, fmt.Errorf("check active requests: %w", err)
	}
	if active != nil {
		return nil, booking.ErrDuplicateActiveRequest
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %s: %w", req.EventDate, err)
	}

	now := time.Now()
	bookingReq := &entity.BookingRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:      utils.GenerateReference(),
		CustomerID:     customerUUID,
		VendorID:       listing.VendorID,
		ListingID:      listingID,
		Selection:      sel,
		LineItems:      quote.LineItems,
		TotalPrice:     quote.Total,
		EventDate:      eventDate,
		TimeLabel:      req.TimeLabel,
		Status:         booking.StatusPending,
		CanMakePayment: false,
	}

	if err := s.repo.Booking.Create(ctx, bookingReq); err != nil {
		s.log.Error("Failed to create booking request",
			zap.Error(err),
			zap.String("customer_id", customerID),
			zap.String("listing_id", req.ListingID),
		)
		return nil, fmt.Errorf("create booking request: %w", err)
	}

	s.log.Info("Booking request created",
		zap.String("booking_id", bookingReq.ID.String()),
		zap.String("reference", bookingReq.Reference),
		zap.String("customer_id", customerID),
		zap.String("vendor_id", listing.VendorID.String()),
		zap.Int64("total_price", quote.Total),
	)

	s.notifyTransition(ctx, bookingReq)

	resp := response.BookingToResponse(bookingReq)
	return &resp, nil
}

func (s *bookingService) Accept(ctx context.Context, vendorID, bookingID string) (*response.BookingResponse, error) {
	return s.vendorDecision(ctx, vendorID, bookingID, booking.StatusAccepted)
}

func (s *bookingService) Reject(ctx context.Context, vendorID, bookingID string) (*response.BookingResponse, error) {
	return s.vendorDecision(ctx, vendorID, bookingID, booking.StatusRejected)
}

// vendorDecision moves a pending request to accepted or rejected on behalf of its
// vendor. The write is a compare-and-set: a concurrent transition makes it fail, it
// never overwrites.
func (s *bookingService) vendorDecision(ctx context.Context, vendorID, bookingID string, to booking.Status) (*response.BookingResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	req, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if req.VendorID != vendorUUID {
		return nil, fmt.Errorf("unauthorized to decide on this booking")
	}

	if !req.Status.CanTransitionTo(to) {
		return nil, booking.NewInvalidTransition(req.Status, to)
	}

	canPay := to == booking.StatusAccepted
	applied, err := s.repo.Booking.UpdateStatusIf(ctx, req.ID, []booking.Status{booking.StatusPending}, to, canPay, nil)
	if err != nil {
		return nil, fmt.Errorf("transition booking %s: %w", bookingID, err)
	}
	if !applied {
		return nil, s.conflictError(ctx, req.ID, to)
	}

	req.Status = to
	req.CanMakePayment = canPay
	req.UpdatedAt = time.Now()

	s.log.Info("Booking request decided",
		zap.String("booking_id", bookingID),
		zap.String("reference", req.Reference),
		zap.String("status", string(to)),
	)
	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	s.notifyTransition(ctx, req)

	resp := response.BookingToResponse(req)
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, customerID, bookingID string, asOf time.Time) (*response.BookingResponse, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	req, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerUUID {
		return nil, fmt.Errorf("unauthorized to cancel this booking")
	}

	if !req.Status.CanTransitionTo(booking.StatusCancelled) {
		return nil, booking.NewInvalidTransition(req.Status, booking.StatusCancelled)
	}

	// The percentage is computed and reported even when no payment happened yet; in
	// that case no money moves, the number is informational.
	pct, days, err := s.refundFor(ctx, req, asOf)
	if err != nil {
		return nil, err
	}

	applied, err := s.repo.Booking.UpdateStatusIf(ctx, req.ID,
		[]booking.Status{booking.StatusPending, booking.StatusAccepted},
		booking.StatusCancelled, false, &pct)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !applied {
		return nil, s.conflictError(ctx, req.ID, booking.StatusCancelled)
	}

	req.Status = booking.StatusCancelled
	req.CanMakePayment = false
	req.RefundPercentage = &pct
	req.UpdatedAt = time.Now()

	s.log.Info("Booking request cancelled",
		zap.String("booking_id", bookingID),
		zap.String("reference", req.Reference),
		zap.Int("refund_percentage", pct),
		zap.Int("days_before_event", days),
	)
	metrics.BookingTransitions.WithLabelValues(string(booking.StatusCancelled)).Inc()
	s.notifyTransition(ctx, req)

	resp := response.BookingToResponse(req)
	return &resp, nil
}

func (s *bookingService) RecordPayment(ctx context.Context, customerID, bookingID string, req *request.RecordPaymentRequest) (*response.BookingResponse, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	bookingReq, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bookingReq.CustomerID != customerUUID {
		return nil, fmt.Errorf("unauthorized to pay for this booking")
	}

	if bookingReq.Status == booking.StatusPaid {
		return nil, booking.ErrPaymentNotAllowed
	}
	if bookingReq.Status != booking.StatusAccepted {
		return nil, booking.NewInvalidTransition(bookingReq.Status, booking.StatusPaid)
	}
	if !bookingReq.CanMakePayment {
		return nil, booking.ErrPaymentNotAllowed
	}

	paid, err := s.repo.Payment.ExistsForBooking(ctx, bookingReq.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if paid {
		return nil, booking.ErrPaymentNotAllowed
	}

	// CAS first: of concurrent payment attempts exactly one flips the status, and
	// only the winner records the payment row.
	applied, err := s.repo.Booking.UpdateStatusIf(ctx, bookingReq.ID,
		[]booking.Status{booking.StatusAccepted}, booking.StatusPaid, false, nil)
	if err != nil {
		return nil, fmt.Errorf("record payment for booking %s: %w", bookingID, err)
	}
	if !applied {
		return nil, booking.ErrPaymentNotAllowed
	}

	now := time.Now()
	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		BookingID:  bookingReq.ID,
		Amount:     bookingReq.TotalPrice,
		GatewayRef: req.GatewayRef,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to record payment row",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		// Compensate: undo the status flip so the request is exactly as it was and
		// the customer can retry.
		if reverted, rbErr := s.repo.Booking.UpdateStatusIf(ctx, bookingReq.ID,
			[]booking.Status{booking.StatusPaid}, booking.StatusAccepted, true, nil); rbErr != nil || !reverted {
			s.log.Error("Failed to revert payment status flip",
				zap.Error(rbErr),
				zap.String("booking_id", bookingID),
			)
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	bookingReq.Status = booking.StatusPaid
	bookingReq.CanMakePayment = false
	bookingReq.UpdatedAt = now

	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", bookingID),
		zap.Int64("amount", payment.Amount),
	)
	metrics.BookingTransitions.WithLabelValues(string(booking.StatusPaid)).Inc()
	metrics.PaymentAmount.Observe(float64(payment.Amount))
	s.notifyTransition(ctx, bookingReq)

	resp := response.BookingToResponse(bookingReq)
	paymentResp := response.PaymentToResponse(payment)
	resp.Payment = &paymentResp
	return &resp, nil
}

func (s *bookingService) RefundPreview(ctx context.Context, customerID, bookingID string, asOf time.Time) (*response.RefundPreviewResponse, error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	req, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerUUID {
		return nil, fmt.Errorf("unauthorized to preview refund for this booking")
	}

	pct, days, err := s.refundFor(ctx, req, asOf)
	if err != nil {
		return nil, err
	}

	return &response.RefundPreviewResponse{
		BookingID:        req.ID.String(),
		DaysBeforeEvent:  days,
		RefundPercentage: pct,
		RefundAmount:     req.TotalPrice * int64(pct) / 100,
	}, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customerUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customer bookings",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, customerUUID)
	if err != nil {
		s.log.Error("Failed to count customer bookings", zap.Error(err))
		return nil, fmt.Errorf("count customer bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = response.BookingToResponse(b)
		if payment, _ := s.repo.Payment.FindByBookingID(ctx, b.ID); payment != nil {
			paymentResp := response.PaymentToResponse(payment)
			responses[i].Payment = &paymentResp
		}
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetVendorPending(ctx context.Context, vendorID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID format %s: %w", vendorID, err)
	}

	bookings, err := s.repo.Booking.FindPendingByVendorID(ctx, vendorUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get vendor pending bookings",
			zap.Error(err),
			zap.String("vendor_id", vendorID),
		)
		return nil, fmt.Errorf("get vendor pending bookings: %w", err)
	}

	total, err := s.repo.Booking.CountPendingByVendorID(ctx, vendorUUID)
	if err != nil {
		s.log.Error("Failed to count vendor pending bookings", zap.Error(err))
		return nil, fmt.Errorf("count vendor pending bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	req, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(req)
	if payment, _ := s.repo.Payment.FindByBookingID(ctx, req.ID); payment != nil {
		paymentResp := response.PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.BookingRequest, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	req, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up booking: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	return req, nil
}

// refundFor resolves the refund percentage for cancelling req at asOf, from the
// vendor's published terms. No policy published means no refund.
func (s *bookingService) refundFor(ctx context.Context, req *entity.BookingRequest, asOf time.Time) (pct, days int, err error) {
	policy, err := s.repo.Policy.FindByVendorID(ctx, req.VendorID)
	if err != nil {
		return 0, 0, fmt.Errorf("look up cancellation policy: %w", err)
	}

	var terms []booking.CancellationTerm
	if policy != nil {
		terms = policy.Terms
	}

	days = booking.DaysBetween(asOf, req.EventDate)
	return booking.RefundPercentage(terms, days), days, nil
}

// conflictError re-reads the request after a lost compare-and-set to name the status
// the winner left behind.
func (s *bookingService) conflictError(ctx context.Context, id uuid.UUID, attempted booking.Status) error {
	current, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || current == nil {
		return booking.ErrInvalidStateTransition
	}
	return booking.NewInvalidTransition(current.Status, attempted)
}

func (s *bookingService) notifyTransition(ctx context.Context, req *entity.BookingRequest) {
	// Best effort: delivery problems are the notifier's to report, transitions never
	// roll back over them.
	if err := s.notifier.BookingTransition(ctx, req); err != nil {
		s.log.Warn("Transition notification failed",
			zap.Error(err),
			zap.String("booking_id", req.ID.String()),
		)
	}
}
