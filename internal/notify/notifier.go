package notify

import (
	"context"
	"fmt"
	"time"

	"marketplace-booking/internal/data/entity"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Notifier is the vendor/customer messaging hook. The booking service calls it
// exactly once per successful transition with the post-transition snapshot. Delivery
// is best effort: a failed notification never rolls a transition back.
type Notifier interface {
	BookingTransition(ctx context.Context, req *entity.BookingRequest) error
}

// transitionEvent is the payload posted to the messaging collaborator.
type transitionEvent struct {
	BookingID  string `json:"booking_id"`
	Reference  string `json:"reference"`
	CustomerID string `json:"customer_id"`
	VendorID   string `json:"vendor_id"`
	Status     string `json:"status"`
	TotalPrice int64  `json:"total_price"`
	OccurredAt string `json:"occurred_at"`
}

// LogNotifier only logs transitions. Used when no webhook URL is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) BookingTransition(_ context.Context, req *entity.BookingRequest) error {
	n.log.Info("Booking transition",
		zap.String("booking_id", req.ID.String()),
		zap.String("reference", req.Reference),
		zap.String("status", string(req.Status)),
	)
	return nil
}

// WebhookNotifier posts transition events to the messaging collaborator. The circuit
// breaker keeps a dead webhook endpoint from slowing every booking operation down.
type WebhookNotifier struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	url     string
	log     *zap.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, log *zap.Logger) *WebhookNotifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "booking-webhook",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Notification circuit breaker state changed",
				zap.String("circuit", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &WebhookNotifier{
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0), // the breaker decides, not retries
		breaker: breaker,
		url:     url,
		log:     log.With(zap.String("notifier", "webhook")),
	}
}

func (n *WebhookNotifier) BookingTransition(ctx context.Context, req *entity.BookingRequest) error {
	event := transitionEvent{
		BookingID:  req.ID.String(),
		Reference:  req.Reference,
		CustomerID: req.CustomerID.String(),
		VendorID:   req.VendorID.String(),
		Status:     string(req.Status),
		TotalPrice: req.TotalPrice,
		OccurredAt: req.UpdatedAt.Format(time.RFC3339),
	}

	_, err := n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.R().
			SetContext(ctx).
			SetBody(event).
			Post(n.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("webhook returned %d", resp.StatusCode())
		}
		return nil, nil
	})

	if err != nil {
		n.log.Warn("Failed to deliver booking transition",
			zap.Error(err),
			zap.String("booking_id", req.ID.String()),
			zap.String("status", string(req.Status)),
		)
		return fmt.Errorf("deliver booking transition %s: %w", req.ID.String(), err)
	}

	return nil
}
