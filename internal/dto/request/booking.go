package request

import (
	"fmt"

	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
)

type SelectionItemRequest struct {
	ItemID           string   `json:"item_id" validate:"required,uuid4"`
	Included         bool     `json:"included"`
	Quantity         int      `json:"quantity" validate:"min=0"`
	CustomizationIDs []string `json:"customization_ids,omitempty" validate:"dive,uuid4"`
}

type SelectionRequest struct {
	PackageID *string                `json:"package_id,omitempty" validate:"omitempty,uuid4"`
	Items     []SelectionItemRequest `json:"items,omitempty" validate:"dive"`
}

// ToDomain parses the wire selection into the domain form. Choosing a package clears
// any item selections, so at most one of the two is ever populated.
func (s SelectionRequest) ToDomain() (booking.Selection, error) {
	if s.PackageID != nil {
		packageID, err := uuid.Parse(*s.PackageID)
		if err != nil {
			return booking.Selection{}, fmt.Errorf("invalid package ID format %s: %w", *s.PackageID, err)
		}
		return booking.Selection{PackageID: &packageID}, nil
	}

	sel := booking.Selection{}
	for _, item := range s.Items {
		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			return booking.Selection{}, fmt.Errorf("invalid item ID format %s: %w", item.ItemID, err)
		}

		customizationIDs := make([]uuid.UUID, len(item.CustomizationIDs))
		for i, raw := range item.CustomizationIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return booking.Selection{}, fmt.Errorf("invalid customization ID format %s: %w", raw, err)
			}
			customizationIDs[i] = id
		}

		sel.Items = append(sel.Items, booking.SelectionItem{
			ItemID:           itemID,
			Included:         item.Included,
			Quantity:         item.Quantity,
			CustomizationIDs: customizationIDs,
		})
	}

	return sel, nil
}

type QuoteRequest struct {
	ListingID string           `json:"listing_id" validate:"required,uuid4"`
	Selection SelectionRequest `json:"selection"`
}

type CreateBookingRequest struct {
	ListingID string           `json:"listing_id" validate:"required,uuid4"`
	Selection SelectionRequest `json:"selection"`
	EventDate string           `json:"event_date" validate:"required,datetime=2006-01-02"`
	TimeLabel string           `json:"time_label" validate:"required"`
}

type RecordPaymentRequest struct {
	GatewayRef *string `json:"gateway_ref,omitempty"`
}
