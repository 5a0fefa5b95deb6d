package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// LineItem is one priced line of a quote.
type LineItem struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Subtotal int64     `json:"subtotal"`
}

// Quote is the result of pricing a selection against a catalog.
type Quote struct {
	LineItems []LineItem `json:"line_items"`
	Total     int64      `json:"total"`
}

// ComputePrice prices a selection against a catalog. It is a pure function: identical
// inputs always produce identical output.
//
// When a package is selected the total is the bundle price and the referenced items
// appear as zero-cost lines for display. Otherwise each included item contributes
// unitPrice*quantity plus the prices of its chosen customizations; excluded items
// contribute nothing. An empty selection prices to zero, which is a valid computation
// even though it is not bookable.
func ComputePrice(catalog Catalog, sel Selection) (Quote, error) {
	if sel.PackageID != nil {
		return pricePackage(catalog, *sel.PackageID)
	}

	quote := Quote{}
	for _, chosen := range sel.Items {
		if !chosen.Included {
			continue
		}

		item := catalog.Item(chosen.ItemID)
		if item == nil {
			return Quote{}, fmt.Errorf("%w: %s", ErrItemNotInCatalog, chosen.ItemID)
		}

		qty := chosen.Quantity
		if qty == 0 && item.MinQuantity == 0 && item.MaxQuantity == 0 {
			qty = 1
		}
		if err := checkQuantity(item, qty); err != nil {
			return Quote{}, err
		}

		subtotal := item.UnitPrice * int64(qty)

		extra, err := customizationTotal(item, chosen.CustomizationIDs)
		if err != nil {
			return Quote{}, err
		}
		subtotal += extra

		quote.LineItems = append(quote.LineItems, LineItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: qty,
			Subtotal: subtotal,
		})
		quote.Total += subtotal
	}

	return quote, nil
}

func pricePackage(catalog Catalog, packageID uuid.UUID) (Quote, error) {
	pkg := catalog.Package(packageID)
	if pkg == nil {
		return Quote{}, fmt.Errorf("%w: %s", ErrPackageNotInCatalog, packageID)
	}

	// Referenced items are informational only, at zero incremental cost.
	quote := Quote{Total: pkg.Price}
	for _, itemID := range pkg.ItemIDs {
		item := catalog.Item(itemID)
		if item == nil {
			continue
		}
		quote.LineItems = append(quote.LineItems, LineItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: 1,
			Subtotal: 0,
		})
	}
	return quote, nil
}

func checkQuantity(item *CatalogItem, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: item %s quantity %d", ErrQuantityOutOfRange, item.Name, qty)
	}
	if item.MinQuantity > 0 && qty < item.MinQuantity {
		return fmt.Errorf("%w: item %s quantity %d below minimum %d",
			ErrQuantityOutOfRange, item.Name, qty, item.MinQuantity)
	}
	if item.MaxQuantity > 0 && qty > item.MaxQuantity {
		return fmt.Errorf("%w: item %s quantity %d above maximum %d",
			ErrQuantityOutOfRange, item.Name, qty, item.MaxQuantity)
	}
	return nil
}

func customizationTotal(item *CatalogItem, chosenIDs []uuid.UUID) (int64, error) {
	var total int64

	for _, id := range chosenIDs {
		found := false
		for _, c := range item.Customizations {
			if c.ID == id {
				total += c.Price
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: item %s customization %s", ErrInvalidCustomization, item.Name, id)
		}
	}

	for _, c := range item.Customizations {
		if !c.Required {
			continue
		}
		chosen := false
		for _, id := range chosenIDs {
			if c.ID == id {
				chosen = true
				break
			}
		}
		if !chosen {
			return 0, fmt.Errorf("%w: item %s requires %s", ErrMissingRequiredCustomization, item.Name, c.Name)
		}
	}

	return total, nil
}
