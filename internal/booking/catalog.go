package booking

import "github.com/google/uuid"

// All prices are integer amounts in the smallest currency unit. No floating point
// arithmetic anywhere in this package.

// Customization is an optional add-on a vendor attaches to a catalog item. A required
// customization must be part of every selection that includes its item.
type Customization struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Required bool      `json:"required"`
}

// CatalogItem is a single orderable unit of a listing. MinQuantity and MaxQuantity
// bound the selectable quantity; zero means unbounded on that side, and an unbounded
// selection defaults to quantity 1.
type CatalogItem struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      int64           `json:"unit_price"`
	MinQuantity    int             `json:"min_quantity"`
	MaxQuantity    int             `json:"max_quantity"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// Package bundles a fixed set of catalog items at a fixed bundle price. Savings is
// informational: the sum of the referenced item prices minus the bundle price.
type Package struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Price   int64       `json:"price"`
	Savings int64       `json:"savings"`
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// Catalog is the priced definition of a listing, frozen from the customer's point of
// view at quote and booking time.
type Catalog struct {
	Items    []CatalogItem `json:"items"`
	Packages []Package     `json:"packages,omitempty"`
}

// Item returns the catalog item with the given ID, or nil.
func (c Catalog) Item(id uuid.UUID) *CatalogItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Package returns the package with the given ID, or nil.
func (c Catalog) Package(id uuid.UUID) *Package {
	for i := range c.Packages {
		if c.Packages[i].ID == id {
			return &c.Packages[i]
		}
	}
	return nil
}

// SavingsFor computes the savings of a package against this catalog: the sum of the
// referenced item unit prices minus the bundle price. Items missing from the catalog
// contribute zero.
func (c Catalog) SavingsFor(p Package) int64 {
	var sum int64
	for _, id := range p.ItemIDs {
		if item := c.Item(id); item != nil {
			sum += item.UnitPrice
		}
	}
	return sum - p.Price
}

// SelectionItem is one chosen catalog item with its quantity and chosen
// customizations. Included distinguishes a deselected line from an absent one, so a
// select-all / deselect-all UI can round-trip the full list.
type SelectionItem struct {
	ItemID           uuid.UUID   `json:"item_id"`
	Included         bool        `json:"included"`
	Quantity         int         `json:"quantity"`
	CustomizationIDs []uuid.UUID `json:"customization_ids,omitempty"`
}

// Selection is the customer's chosen subset of a listing. Exactly one of PackageID or
// a non-empty included item set drives the price; choosing a package clears items.
type Selection struct {
	PackageID *uuid.UUID      `json:"package_id,omitempty"`
	Items     []SelectionItem `json:"items,omitempty"`
}

// IsEmpty returns true when no package is chosen and no item is included.
func (s Selection) IsEmpty() bool {
	if s.PackageID != nil {
		return false
	}
	for _, it := range s.Items {
		if it.Included {
			return false
		}
	}
	return true
}
