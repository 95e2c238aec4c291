package domain

// ItemType classifies what a rentable item is.
type ItemType string

const (
	ItemRoom       ItemType = "ROOM"
	ItemInstrument ItemType = "INSTRUMENT"
	ItemAccessory  ItemType = "ACCESSORY"
	ItemOther      ItemType = "OTHER"
)

// RentalMode determines how an item may be booked.
type RentalMode string

const (
	// RentalTimeExclusive items admit a single reservation per overlapping
	// time window; a line for such an item always carries quantity 1.
	RentalTimeExclusive RentalMode = "TIME_EXCLUSIVE"
	// RentalTimeQuantity items may be booked up to quantityTotal units
	// per overlapping time window.
	RentalTimeQuantity RentalMode = "TIME_QUANTITY"
)

// Branch is a provider-owned location offering rentable items. Immutable
// from the client's perspective outside the explicit provider CRUD calls.
type Branch struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Active     bool   `json:"active"`
	ProviderID int64  `json:"providerId,omitempty"`
}

// Item is a rentable unit belonging to a branch.
type Item struct {
	ID            int64      `json:"id"`
	BranchID      int64      `json:"branchId"`
	Name          string     `json:"name"`
	Type          ItemType   `json:"type"`
	RentalMode    RentalMode `json:"rentalMode"`
	BasePrice     float64    `json:"basePrice"`
	Active        bool       `json:"active"`
	QuantityTotal int        `json:"quantityTotal"`
}
