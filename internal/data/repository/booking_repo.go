package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/data/entity"
	"marketplace-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts a new pending request. A partial unique index on
	// (customer_id, vendor_id, listing_id) WHERE status IN ('pending', 'accepted')
	// backs the duplicate-active rule at insert time; a violation surfaces as
	// booking.ErrDuplicateActiveRequest.
	Create(ctx context.Context, req *entity.BookingRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error)
	FindByReference(ctx context.Context, reference string) (*entity.BookingRequest, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindPendingByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error)
	CountPendingByVendorID(ctx context.Context, vendorID uuid.UUID) (int64, error)

	// FindActiveByParties returns the customer's pending or accepted request against
	// this vendor and listing, if one exists.
	FindActiveByParties(ctx context.Context, customerID, vendorID, listingID uuid.UUID) (*entity.BookingRequest, error)

	// UpdateStatusIf performs the compare-and-set transition: the new status, payment
	// flag and refund percentage are written only when the current status is still in
	// the from set. Returns false, without error, when a concurrent writer won.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from []booking.Status, to booking.Status, canPay bool, refundPct *int) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, customer_id, vendor_id, listing_id, selection, line_items,
	total_price, event_date, time_label, status, can_make_payment, refund_percentage,
	created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, req *entity.BookingRequest) error {
	query := `
		INSERT INTO booking_requests (id, reference, customer_id, vendor_id, listing_id, selection,
			line_items, total_price, event_date, time_label, status, can_make_payment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.Reference,
		req.CustomerID,
		req.VendorID,
		req.ListingID,
		req.Selection,
		req.LineItems,
		req.TotalPrice,
		req.EventDate,
		req.TimeLabel,
		req.Status,
		req.CanMakePayment,
		req.CreatedAt,
		req.UpdatedAt,
	)

	if err != nil {
		// Two concurrent creates can both pass the service's pre-check; the partial
		// unique index decides the loser here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create booking request %s: %w", req.Reference, booking.ErrDuplicateActiveRequest)
		}
		r.log.Error("Failed to create booking request",
			zap.Error(err),
			zap.String("reference", req.Reference),
			zap.String("customer_id", req.CustomerID.String()),
		)
		return fmt.Errorf("create booking request %s: %w", req.Reference, err)
	}

	return nil
}

func (r *bookingRepository) scanOne(row pgx.Row) (*entity.BookingRequest, error) {
	var req entity.BookingRequest
	err := row.Scan(
		&req.ID,
		&req.Reference,
		&req.CustomerID,
		&req.VendorID,
		&req.ListingID,
		&req.Selection,
		&req.LineItems,
		&req.TotalPrice,
		&req.EventDate,
		&req.TimeLabel,
		&req.Status,
		&req.CanMakePayment,
		&req.RefundPercentage,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE id = $1`

	req, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking request by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking request by ID %s: %w", id.String(), err)
	}

	return req, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE reference = $1`

	req, err := r.scanOne(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking request by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking request by reference %s: %w", reference, err)
	}

	return req, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM booking_requests
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find booking requests by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find booking requests by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM booking_requests WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count booking requests by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count booking requests by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindPendingByVendorID(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM booking_requests
		WHERE vendor_id = $1 AND status = 'pending'
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, vendorID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find pending booking requests by vendor ID",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("find pending booking requests by vendor ID %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *bookingRepository) CountPendingByVendorID(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM booking_requests WHERE vendor_id = $1 AND status = 'pending'`

	var count int64
	if err := r.db.QueryRow(ctx, query, vendorID).Scan(&count); err != nil {
		r.log.Error("Failed to count pending booking requests by vendor ID",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return 0, fmt.Errorf("count pending booking requests by vendor ID %s: %w", vendorID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveByParties(ctx context.Context, customerID, vendorID, listingID uuid.UUID) (*entity.BookingRequest, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM booking_requests
		WHERE customer_id = $1 AND vendor_id = $2 AND listing_id = $3
		  AND status IN ('pending', 'accepted')
		ORDER BY created_at DESC
		LIMIT 1
	`

	req, err := r.scanOne(r.db.QueryRow(ctx, query, customerID, vendorID, listingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking request",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find active booking request: %w", err)
	}

	return req, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from []booking.Status, to booking.Status, canPay bool, refundPct *int) (bool, error) {
	query := `
		UPDATE booking_requests
		SET status = $2, can_make_payment = $3,
		    refund_percentage = COALESCE($4, refund_percentage),
		    updated_at = NOW()
		WHERE id = $1 AND status = ANY($5)
	`

	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, id, to, canPay, refundPct, fromStr)
	if err != nil {
		r.log.Error("Failed to update booking request status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking request %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.BookingRequest, error) {
	var requests []*entity.BookingRequest
	for rows.Next() {
		req, err := r.scanOne(rows)
		if err != nil {
			r.log.Error("Failed to scan booking request row", zap.Error(err))
			return nil, fmt.Errorf("scan booking request row: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}
