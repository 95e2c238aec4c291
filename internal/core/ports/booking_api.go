package ports

import (
	"context"

	"github.com/domination/booking-client/internal/core/domain"
)

// ReservationLineInput is one validated item/quantity pair of a draft.
type ReservationLineInput struct {
	ItemID   int64
	Quantity int
}

// CreateReservationInput is a well-formed reservation-creation request. It
// only exists as the output of draft validation; overlap and stock checks
// remain the booking service's job.
type CreateReservationInput struct {
	BranchID int64
	StartAt  domain.LocalTime
	EndAt    domain.LocalTime
	Lines    []ReservationLineInput
}

// BookingAPI is the booking service surface the client consumes.
type BookingAPI interface {
	MyReservations(ctx context.Context) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error)
}
