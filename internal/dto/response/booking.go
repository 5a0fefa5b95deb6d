package response

import (
	"time"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/data/entity"
)

type QuoteResponse struct {
	ListingID string             `json:"listing_id"`
	LineItems []booking.LineItem `json:"line_items"`
	Total     int64              `json:"total"`
}

type BookingResponse struct {
	ID               string             `json:"id"`
	Reference        string             `json:"reference"`
	CustomerID       string             `json:"customer_id"`
	VendorID         string             `json:"vendor_id"`
	ListingID        string             `json:"listing_id"`
	LineItems        []booking.LineItem `json:"line_items"`
	TotalPrice       int64              `json:"total_price"`
	EventDate        string             `json:"event_date"`
	TimeLabel        string             `json:"time_label"`
	Status           booking.Status     `json:"status"`
	CanMakePayment   bool               `json:"can_make_payment"`
	RefundPercentage *int               `json:"refund_percentage,omitempty"`
	Payment          *PaymentResponse   `json:"payment,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	Amount     int64     `json:"amount"`
	GatewayRef *string   `json:"gateway_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RefundPreviewResponse struct {
	BookingID        string `json:"booking_id"`
	DaysBeforeEvent  int    `json:"days_before_event"`
	RefundPercentage int    `json:"refund_percentage"`
	RefundAmount     int64  `json:"refund_amount"`
}

// Helper converters
func BookingToResponse(req *entity.BookingRequest) BookingResponse {
	return BookingResponse{
		ID:               req.ID.String(),
		Reference:        req.Reference,
		CustomerID:       req.CustomerID.String(),
		VendorID:         req.VendorID.String(),
		ListingID:        req.ListingID.String(),
		LineItems:        req.LineItems,
		TotalPrice:       req.TotalPrice,
		EventDate:        req.EventDate.Format("2006-01-02"),
		TimeLabel:        req.TimeLabel,
		Status:           req.Status,
		CanMakePayment:   req.CanMakePayment,
		RefundPercentage: req.RefundPercentage,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID.String(),
		BookingID:  payment.BookingID.String(),
		Amount:     payment.Amount,
		GatewayRef: payment.GatewayRef,
		CreatedAt:  payment.CreatedAt,
	}
}
