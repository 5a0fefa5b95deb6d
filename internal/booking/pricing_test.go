package booking_test

import (
	"testing"

	"marketplace-booking/internal/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() (booking.Catalog, booking.CatalogItem, booking.Customization) {
	custom := booking.Customization{
		ID:    uuid.New(),
		Name:  "Drone coverage",
		Price: 300,
	}
	item := booking.CatalogItem{
		ID:             uuid.New(),
		Name:           "Photography",
		UnitPrice:      1200,
		Customizations: []booking.Customization{custom},
	}
	return booking.Catalog{Items: []booking.CatalogItem{item}}, item, custom
}

func TestComputePrice_ItemWithCustomization(t *testing.T) {
	catalog, item, custom := testCatalog()

	sel := booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: item.ID, Included: true, Quantity: 1, CustomizationIDs: []uuid.UUID{custom.ID}},
		},
	}

	quote, err := booking.ComputePrice(catalog, sel)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), quote.Total)
	require.Len(t, quote.LineItems, 1)
	assert.Equal(t, int64(1500), quote.LineItems[0].Subtotal)
}

func TestComputePrice_Deterministic(t *testing.T) {
	catalog, item, custom := testCatalog()
	sel := booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: item.ID, Included: true, Quantity: 2, CustomizationIDs: []uuid.UUID{custom.ID}},
		},
	}

	first, err := booking.ComputePrice(catalog, sel)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := booking.ComputePrice(catalog, sel)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputePrice_Package(t *testing.T) {
	itemA := booking.CatalogItem{ID: uuid.New(), Name: "Catering", UnitPrice: 10000}
	itemB := booking.CatalogItem{ID: uuid.New(), Name: "Decoration", UnitPrice: 7000}
	pkg := booking.Package{
		ID:      uuid.New(),
		Name:    "Wedding combo",
		Price:   15000,
		ItemIDs: []uuid.UUID{itemA.ID, itemB.ID},
	}
	catalog := booking.Catalog{
		Items:    []booking.CatalogItem{itemA, itemB},
		Packages: []booking.Package{pkg},
	}

	assert.Equal(t, int64(2000), catalog.SavingsFor(pkg))

	quote, err := booking.ComputePrice(catalog, booking.Selection{PackageID: &pkg.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), quote.Total)
	require.Len(t, quote.LineItems, 2)
	for _, line := range quote.LineItems {
		assert.Equal(t, int64(0), line.Subtotal)
	}
}

func TestComputePrice_UnknownPackage(t *testing.T) {
	catalog, _, _ := testCatalog()
	missing := uuid.New()

	_, err := booking.ComputePrice(catalog, booking.Selection{PackageID: &missing})
	assert.ErrorIs(t, err, booking.ErrPackageNotInCatalog)
}

func TestComputePrice_SelectAllDeselectAll(t *testing.T) {
	itemA := booking.CatalogItem{ID: uuid.New(), Name: "Sound", UnitPrice: 4000}
	itemB := booking.CatalogItem{ID: uuid.New(), Name: "Lighting", UnitPrice: 2500}
	catalog := booking.Catalog{Items: []booking.CatalogItem{itemA, itemB}}

	all := booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: itemA.ID, Included: true, Quantity: 1},
			{ItemID: itemB.ID, Included: true, Quantity: 1},
		},
	}
	quote, err := booking.ComputePrice(catalog, all)
	require.NoError(t, err)
	assert.Equal(t, int64(6500), quote.Total)

	// Deselecting any item never increases the total.
	one := booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: itemA.ID, Included: true, Quantity: 1},
			{ItemID: itemB.ID, Included: false, Quantity: 1},
		},
	}
	quote, err = booking.ComputePrice(catalog, one)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), quote.Total)

	none := booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: itemA.ID, Included: false, Quantity: 1},
			{ItemID: itemB.ID, Included: false, Quantity: 1},
		},
	}
	quote, err = booking.ComputePrice(catalog, none)
	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.Total)
	assert.Empty(t, quote.LineItems)
	assert.True(t, none.IsEmpty())
}

func TestComputePrice_QuantityBounds(t *testing.T) {
	item := booking.CatalogItem{
		ID:          uuid.New(),
		Name:        "Guest chairs",
		UnitPrice:   50,
		MinQuantity: 10,
		MaxQuantity: 200,
	}
	catalog := booking.Catalog{Items: []booking.CatalogItem{item}}

	_, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: item.ID, Included: true, Quantity: 5}},
	})
	assert.ErrorIs(t, err, booking.ErrQuantityOutOfRange)

	_, err = booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: item.ID, Included: true, Quantity: 500}},
	})
	assert.ErrorIs(t, err, booking.ErrQuantityOutOfRange)

	quote, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: item.ID, Included: true, Quantity: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), quote.Total)
}

func TestComputePrice_UnboundedQuantityDefaultsToOne(t *testing.T) {
	item := booking.CatalogItem{ID: uuid.New(), Name: "Venue", UnitPrice: 20000}
	catalog := booking.Catalog{Items: []booking.CatalogItem{item}}

	quote, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: item.ID, Included: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), quote.Total)
	assert.Equal(t, 1, quote.LineItems[0].Quantity)
}

func TestComputePrice_InvalidCustomization(t *testing.T) {
	catalog, item, _ := testCatalog()

	_, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: item.ID, Included: true, Quantity: 1, CustomizationIDs: []uuid.UUID{uuid.New()}},
		},
	})
	assert.ErrorIs(t, err, booking.ErrInvalidCustomization)
}

func TestComputePrice_MissingRequiredCustomization(t *testing.T) {
	required := booking.Customization{ID: uuid.New(), Name: "Setup crew", Price: 500, Required: true}
	item := booking.CatalogItem{
		ID:             uuid.New(),
		Name:           "Stage",
		UnitPrice:      8000,
		Customizations: []booking.Customization{required},
	}
	catalog := booking.Catalog{Items: []booking.CatalogItem{item}}

	_, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: item.ID, Included: true, Quantity: 1}},
	})
	assert.ErrorIs(t, err, booking.ErrMissingRequiredCustomization)

	quote, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{
			{ItemID: item.ID, Included: true, Quantity: 1, CustomizationIDs: []uuid.UUID{required.ID}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8500), quote.Total)
}

func TestComputePrice_UnknownItem(t *testing.T) {
	catalog, _, _ := testCatalog()

	_, err := booking.ComputePrice(catalog, booking.Selection{
		Items: []booking.SelectionItem{{ItemID: uuid.New(), Included: true, Quantity: 1}},
	})
	assert.ErrorIs(t, err, booking.ErrItemNotInCatalog)
}
