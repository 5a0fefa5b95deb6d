package request

type CustomizationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Price    int64  `json:"price" validate:"min=0"`
	Required bool   `json:"required"`
}

type CatalogItemRequest struct {
	Name           string                 `json:"name" validate:"required,min=1,max=120"`
	UnitPrice      int64                  `json:"unit_price" validate:"min=0"`
	MinQuantity    int                    `json:"min_quantity" validate:"min=0"`
	MaxQuantity    int                    `json:"max_quantity" validate:"min=0"`
	Customizations []CustomizationRequest `json:"customizations,omitempty" validate:"dive"`
}

// PackageRequest references items by their position in the listing's item array, so a
// vendor can author a whole listing in one request.
type PackageRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Price       int64  `json:"price" validate:"min=0"`
	ItemIndexes []int  `json:"item_indexes" validate:"required,min=1,dive,min=0"`
}

type CreateListingRequest struct {
	Title       string               `json:"title" validate:"required,min=3,max=200"`
	Description string               `json:"description" validate:"max=2000"`
	Category    string               `json:"category" validate:"required,min=2,max=60"`
	Items       []CatalogItemRequest `json:"items" validate:"required,min=1,dive"`
	Packages    []PackageRequest     `json:"packages,omitempty" validate:"dive"`
	IsPublished bool                 `json:"is_published"`
}

type PublishListingRequest struct {
	IsPublished bool `json:"is_published"`
}

type SlotRequest struct {
	TimeLabel string `json:"time_label" validate:"required"`
	Available bool   `json:"available"`
}

type PublishAvailabilityRequest struct {
	Date  string        `json:"date" validate:"required,datetime=2006-01-02"`
	Slots []SlotRequest `json:"slots" validate:"dive"`
}

type CancellationTermRequest struct {
	DaysBeforeEvent  int `json:"days_before_event" validate:"min=0"`
	RefundPercentage int `json:"refund_percentage" validate:"min=0,max=100"`
}

type PublishTermsRequest struct {
	Terms []CancellationTermRequest `json:"terms" validate:"dive"`
}
