package gateway

import (
	"context"
	"net/http"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

type reservationLineBody struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

type createReservationBody struct {
	BranchID int64                 `json:"branchId"`
	StartAt  domain.LocalTime      `json:"startAt"`
	EndAt    domain.LocalTime      `json:"endAt"`
	Lines    []reservationLineBody `json:"lines"`
}

// MyReservations lists the authenticated user's reservations.
func (c *Client) MyReservations(ctx context.Context) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	if err := c.do(ctx, "booking.my_reservations", http.MethodGet, c.baseURL, "/api/booking/my/reservations", nil, true, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CreateReservation submits a validated draft. Overlap and stock rejections
// come back as *APIError with the server's message untouched.
func (c *Client) CreateReservation(ctx context.Context, in ports.CreateReservationInput) (*domain.Reservation, error) {
	body := createReservationBody{
		BranchID: in.BranchID,
		StartAt:  in.StartAt,
		EndAt:    in.EndAt,
		Lines:    make([]reservationLineBody, 0, len(in.Lines)),
	}
	for _, line := range in.Lines {
		body.Lines = append(body.Lines, reservationLineBody{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	var reservation domain.Reservation
	if err := c.do(ctx, "booking.reservation_create", http.MethodPost, c.baseURL, "/api/booking/reservations", body, true, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}
