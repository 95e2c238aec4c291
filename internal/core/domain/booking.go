package domain

import "errors"

// ReservationStatus is the server-assigned lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

var (
	// ErrStaleResponse marks a catalog response that was superseded by a
	// newer query before it landed. Stale results must never be rendered.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrSubmissionInFlight rejects a second create while one is still
	// outstanding, so a double-click cannot issue two reservations.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// ReservationLine is one item/quantity pair inside a reservation.
type ReservationLine struct {
	ID       int64   `json:"id,omitempty"`
	ItemID   int64   `json:"itemId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
}

// Reservation is a booking as the server reports it. Overlap and stock
// checks are server-authoritative; the client never computes them.
type Reservation struct {
	ID         int64             `json:"id"`
	CustomerID string            `json:"customerId,omitempty"`
	BranchID   int64             `json:"branchId"`
	StartAt    LocalTime         `json:"startAt"`
	EndAt      LocalTime         `json:"endAt"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  LocalTime         `json:"createdAt"`
	Lines      []ReservationLine `json:"lines"`
}
