package entity

// Vendor is a service provider's profile. Optional fields are explicit pointers with
// fixed defaults resolved once when the record is loaded, never checked ad hoc:
// a nil Phone means "not published", a nil About means an empty description.
type Vendor struct {
	Base
	Name     string  `db:"name"`
	Email    string  `db:"email"`
	Phone    *string `db:"phone"`
	About    *string `db:"about"`
	City     *string `db:"city"`
	IsActive bool    `db:"is_active"`
}
