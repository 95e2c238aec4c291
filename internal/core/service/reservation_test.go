package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

func testValidator() *DraftValidator {
	dv := NewDraftValidator()
	dv.now = func() time.Time {
		return time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	}
	return dv
}

func validForm() DraftForm {
	return DraftForm{
		BranchID: "1",
		StartAt:  "2025-01-01T10:00",
		EndAt:    "2025-01-01T11:00",
		ItemID:   "5",
		Quantity: "1",
	}
}

func TestDraftValidator_Accepts(t *testing.T) {
	input, err := testValidator().Validate(validForm(), nil)
	if err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
	if input.BranchID != 1 {
		t.Fatalf("unexpected branch: %d", input.BranchID)
	}
	if len(input.Lines) != 1 || input.Lines[0].ItemID != 5 || input.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected lines: %+v", input.Lines)
	}
	if !input.StartAt.Before(input.EndAt.Time) {
		t.Fatalf("window out of order: %v .. %v", input.StartAt, input.EndAt)
	}
}

func TestDraftValidator_MissingFields(t *testing.T) {
	for _, clear := range []func(*DraftForm){
		func(f *DraftForm) { f.BranchID = "" },
		func(f *DraftForm) { f.StartAt = "" },
		func(f *DraftForm) { f.EndAt = "" },
		func(f *DraftForm) { f.ItemID = "" },
	} {
		form := validForm()
		clear(&form)

		_, err := testValidator().Validate(form, nil)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("form %+v: expected ValidationError, got %v", form, err)
		}
	}
}

func TestDraftValidator_QuantityDefaultsToOne(t *testing.T) {
	form := validForm()
	form.Quantity = ""

	input, err := testValidator().Validate(form, nil)
	if err != nil {
		t.Fatalf("empty quantity must default: %v", err)
	}
	if input.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", input.Lines[0].Quantity)
	}
}

func TestDraftValidator_BadQuantity(t *testing.T) {
	for _, q := range []string{"0", "-2", "abc", "1.5"} {
		form := validForm()
		form.Quantity = q
		if _, err := testValidator().Validate(form, nil); err == nil {
			t.Fatalf("quantity %q must be rejected", q)
		}
	}
}

func TestDraftValidator_WindowRules(t *testing.T) {
	form := validForm()
	form.StartAt = "2025-01-01T11:00"
	form.EndAt = "2025-01-01T10:00"
	if _, err := testValidator().Validate(form, nil); err == nil {
		t.Fatalf("end before start must be rejected")
	}

	form = validForm()
	form.StartAt = "2020-01-01T10:00"
	form.EndAt = "2020-01-01T11:00"
	_, err := testValidator().Validate(form, nil)
	if err == nil || !strings.Contains(err.Error(), "future") {
		t.Fatalf("past window must be rejected, got %v", err)
	}
}

func TestDraftValidator_ExclusiveItemQuantity(t *testing.T) {
	items := []domain.Item{
		{ID: 5, Name: "Sala A", RentalMode: domain.RentalTimeExclusive},
		{ID: 6, Name: "Amplifier", RentalMode: domain.RentalTimeQuantity, QuantityTotal: 4},
	}

	form := validForm()
	form.Quantity = "2"
	if _, err := testValidator().Validate(form, items); err == nil {
		t.Fatalf("quantity 2 on an exclusive item must be rejected")
	}

	form.ItemID = "6"
	if _, err := testValidator().Validate(form, items); err != nil {
		t.Fatalf("quantity 2 on a quantity-mode item must pass: %v", err)
	}
}

type stubBookingAPI struct {
	createFn func(ctx context.Context, in ports.CreateReservationInput) (*domain.Reservation, error)
}

func (s *stubBookingAPI) MyReservations(context.Context) ([]domain.Reservation, error) {
	return nil, nil
}

func (s *stubBookingAPI) CreateReservation(ctx context.Context, in ports.CreateReservationInput) (*domain.Reservation, error) {
	return s.createFn(ctx, in)
}

func TestReservationSubmitter_ServerMessageVerbatim(t *testing.T) {
	serverMsg := "La sala ya está reservada en ese horario"
	api := &stubBookingAPI{
		createFn: func(context.Context, ports.CreateReservationInput) (*domain.Reservation, error) {
			return nil, errors.New(serverMsg)
		},
	}
	s := NewReservationSubmitter(api, zerolog.Nop())

	_, err := s.Submit(context.Background(), ports.CreateReservationInput{BranchID: 1})
	if err == nil || err.Error() != serverMsg {
		t.Fatalf("expected server message untouched, got %v", err)
	}
}

func TestReservationSubmitter_InFlightGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &stubBookingAPI{
		createFn: func(context.Context, ports.CreateReservationInput) (*domain.Reservation, error) {
			close(entered)
			<-release
			return &domain.Reservation{ID: 1}, nil
		},
	}
	s := NewReservationSubmitter(api, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), ports.CreateReservationInput{})
		done <- err
	}()
	<-entered

	// The double-click: a second submit while the first is outstanding.
	if _, err := s.Submit(context.Background(), ports.CreateReservationInput{}); !errors.Is(err, domain.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Once it finished, submitting works again.
	api.createFn = func(context.Context, ports.CreateReservationInput) (*domain.Reservation, error) {
		return &domain.Reservation{ID: 2}, nil
	}
	if _, err := s.Submit(context.Background(), ports.CreateReservationInput{}); err != nil {
		t.Fatalf("submit after completion failed: %v", err)
	}
}
