package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"marketplace-booking/internal/booking"
	"marketplace-booking/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory repository fakes. The booking fake does its compare-and-set under a
// mutex so concurrent transition tests behave like the real row-level UPDATE.

type fakeBookingRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entity.BookingRequest
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*entity.BookingRequest)}
}

func (r *fakeBookingRepo) Create(_ context.Context, req *entity.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirrors the partial unique index on (customer_id, vendor_id, listing_id)
	// WHERE status IN ('pending', 'accepted').
	for _, existing := range r.byID {
		if existing.CustomerID == req.CustomerID && existing.VendorID == req.VendorID &&
			existing.ListingID == req.ListingID &&
			(existing.Status == booking.StatusPending || existing.Status == booking.StatusAccepted) {
			return fmt.Errorf("create booking request %s: %w", req.Reference, booking.ErrDuplicateActiveRequest)
		}
	}
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *req
	return &clone, nil
}

func (r *fakeBookingRepo) FindByReference(_ context.Context, reference string) (*entity.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.Reference == reference {
			clone := *req
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BookingRequest
	for _, req := range r.byID {
		if req.CustomerID == customerID {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, req := range r.byID {
		if req.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindPendingByVendorID(_ context.Context, vendorID uuid.UUID, limit, offset int) ([]*entity.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BookingRequest
	for _, req := range r.byID {
		if req.VendorID == vendorID && req.Status == booking.StatusPending {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountPendingByVendorID(_ context.Context, vendorID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, req := range r.byID {
		if req.VendorID == vendorID && req.Status == booking.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindActiveByParties(_ context.Context, customerID, vendorID, listingID uuid.UUID) (*entity.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.CustomerID == customerID && req.VendorID == vendorID && req.ListingID == listingID &&
			(req.Status == booking.StatusPending || req.Status == booking.StatusAccepted) {
			clone := *req
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from []booking.Status, to booking.Status, canPay bool, refundPct *int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if req.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	req.Status = to
	req.CanMakePayment = canPay
	if refundPct != nil {
		pct := *refundPct
		req.RefundPercentage = &pct
	}
	return true, nil
}

type fakeListingRepo struct {
	byID map[uuid.UUID]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{byID: make(map[uuid.UUID]*entity.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.byID[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	return r.byID[id], nil
}

func (r *fakeListingRepo) FindByVendorID(_ context.Context, vendorID uuid.UUID) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range r.byID {
		if l.VendorID == vendorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) Update(_ context.Context, listing *entity.Listing) error {
	r.byID[listing.ID] = listing
	return nil
}

type fakeAvailabilityRepo struct {
	byKey map[string]*entity.DayAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{byKey: make(map[string]*entity.DayAvailability)}
}

func availKey(vendorID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s", vendorID, date)
}

func (r *fakeAvailabilityRepo) FindDay(_ context.Context, vendorID uuid.UUID, date string) (*entity.DayAvailability, error) {
	return r.byKey[availKey(vendorID, date)], nil
}

func (r *fakeAvailabilityRepo) FindRange(_ context.Context, vendorID uuid.UUID, fromDate, toDate string) ([]*entity.DayAvailability, error) {
	var out []*entity.DayAvailability
	for _, day := range r.byKey {
		if day.VendorID == vendorID && day.Date >= fromDate && day.Date <= toDate {
			out = append(out, day)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) ReplaceDay(_ context.Context, day *entity.DayAvailability) error {
	r.byKey[availKey(day.VendorID, day.Date)] = day
	return nil
}

type fakePolicyRepo struct {
	byVendor map[uuid.UUID]*entity.CancellationPolicy
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{byVendor: make(map[uuid.UUID]*entity.CancellationPolicy)}
}

func (r *fakePolicyRepo) FindByVendorID(_ context.Context, vendorID uuid.UUID) (*entity.CancellationPolicy, error) {
	return r.byVendor[vendorID], nil
}

func (r *fakePolicyRepo) Replace(_ context.Context, policy *entity.CancellationPolicy) error {
	r.byVendor[policy.VendorID] = policy
	return nil
}

type fakeVendorRepo struct {
	byID map[uuid.UUID]*entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{byID: make(map[uuid.UUID]*entity.Vendor)}
}

func (r *fakeVendorRepo) Upsert(_ context.Context, vendor *entity.Vendor) error {
	r.byID[vendor.ID] = vendor
	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return r.byID[id], nil
}

type fakePaymentRepo struct {
	mu        sync.Mutex
	byBooking map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byBooking: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byBooking[payment.BookingID]; dup {
		return fmt.Errorf("payment already exists for booking %s", payment.BookingID)
	}
	r.byBooking[payment.BookingID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byBooking[bookingID], nil
}

func (r *fakePaymentRepo) ExistsForBooking(_ context.Context, bookingID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byBooking[bookingID]
	return ok, nil
}

// failingPaymentRepo fails the first Create calls, then behaves normally. Used to
// drive the payment insert-failure path.
type failingPaymentRepo struct {
	*fakePaymentRepo
	failMu   sync.Mutex
	failures int
}

func (r *failingPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.failMu.Lock()
	if r.failures > 0 {
		r.failures--
		r.failMu.Unlock()
		return fmt.Errorf("insert payment: connection reset")
	}
	r.failMu.Unlock()
	return r.fakePaymentRepo.Create(ctx, payment)
}

type fakeNotifier struct {
	mu       sync.Mutex
	statuses []booking.Status
}

func (n *fakeNotifier) BookingTransition(_ context.Context, req *entity.BookingRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, req.Status)
	return nil
}

func (n *fakeNotifier) calls() []booking.Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]booking.Status, len(n.statuses))
	copy(out, n.statuses)
	return out
}
