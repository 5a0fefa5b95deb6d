package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStateTransition is returned when an operation is illegal from the
	// request's current status.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrDuplicateActiveRequest is returned when a customer already has a pending or
	// accepted request for the same vendor and listing.
	ErrDuplicateActiveRequest = errors.New("an active request already exists for this listing")

	// ErrEmptySelection is returned when a booking is created with no package and no
	// included items.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrSlotUnavailable is returned when the requested date and time is not bookable.
	ErrSlotUnavailable = errors.New("requested slot is not available")

	// ErrPaymentNotAllowed is returned when a payment is recorded against a request
	// that cannot accept one.
	ErrPaymentNotAllowed = errors.New("payment is not allowed for this request")

	ErrQuantityOutOfRange           = errors.New("item quantity out of range")
	ErrInvalidCustomization         = errors.New("customization does not belong to item")
	ErrMissingRequiredCustomization = errors.New("required customization not selected")

	ErrItemNotInCatalog    = errors.New("selected item not in catalog")
	ErrPackageNotInCatalog = errors.New("selected package not in catalog")
)

// NewInvalidTransition wraps ErrInvalidStateTransition naming the current status and
// the attempted target, so callers can surface both.
func NewInvalidTransition(from, to Status) error {
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStateTransition, from, to)
}
