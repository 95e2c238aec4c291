package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// DraftForm mirrors the reservation form: raw strings exactly as the user
// entered them. Quantity defaults to "1" when left empty.
type DraftForm struct {
	BranchID string
	StartAt  string
	EndAt    string
	ItemID   string
	Quantity string
}

// ValidationError is a client-detected draft problem, resolved locally and
// never sent to the network.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// reservationDraft is the parsed form, checked with struct tags before the
// time-window rules run.
type reservationDraft struct {
	BranchID int64       `validate:"required,gt=0"`
	StartAt  time.Time   `validate:"required"`
	EndAt    time.Time   `validate:"required,gtfield=StartAt"`
	Lines    []draftLine `validate:"required,min=1,dive"`
}

type draftLine struct {
	ItemID   int64 `validate:"required,gt=0"`
	Quantity int   `validate:"required,gte=1"`
}

// DraftValidator converts raw form input into a well-formed reservation
// request. Its contract stops at "well-formed": overlap and stock stay
// server-authoritative.
type DraftValidator struct {
	v   *validator.Validate
	now func() time.Time
}

func NewDraftValidator() *DraftValidator {
	return &DraftValidator{v: validator.New(), now: time.Now}
}

// Validate checks the form and returns the request to submit. items is the
// item set currently loaded for the selected branch (used for the
// TIME_EXCLUSIVE quantity rule); it may be nil when unknown. All failures
// are *ValidationError.
func (dv *DraftValidator) Validate(form DraftForm, items []domain.Item) (*ports.CreateReservationInput, error) {
	if form.BranchID == "" || form.StartAt == "" || form.EndAt == "" || form.ItemID == "" {
		return nil, validationErrorf("branch, start, end and item are all required")
	}

	branchID, err := strconv.ParseInt(form.BranchID, 10, 64)
	if err != nil {
		return nil, validationErrorf("branch id %q is not a number", form.BranchID)
	}
	itemID, err := strconv.ParseInt(form.ItemID, 10, 64)
	if err != nil {
		return nil, validationErrorf("item id %q is not a number", form.ItemID)
	}

	quantityRaw := form.Quantity
	if quantityRaw == "" {
		quantityRaw = "1"
	}
	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil || quantity < 1 {
		return nil, validationErrorf("quantity %q must be a positive integer", quantityRaw)
	}

	startAt, err := domain.ParseLocalTime(form.StartAt)
	if err != nil {
		return nil, validationErrorf("start: %v", err)
	}
	endAt, err := domain.ParseLocalTime(form.EndAt)
	if err != nil {
		return nil, validationErrorf("end: %v", err)
	}

	draft := reservationDraft{
		BranchID: branchID,
		StartAt:  startAt.Time,
		EndAt:    endAt.Time,
		Lines:    []draftLine{{ItemID: itemID, Quantity: quantity}},
	}
	if err := dv.v.Struct(draft); err != nil {
		return nil, &ValidationError{msg: draftErrorMessage(err)}
	}

	now := dv.now()
	if !startAt.After(now) {
		return nil, validationErrorf("start must be in the future")
	}
	if !endAt.After(now) {
		return nil, validationErrorf("end must be in the future")
	}

	for _, it := range items {
		if it.ID == itemID && it.RentalMode == domain.RentalTimeExclusive && quantity != 1 {
			return nil, validationErrorf("%s admits only quantity 1", it.Name)
		}
	}

	return &ports.CreateReservationInput{
		BranchID: branchID,
		StartAt:  startAt,
		EndAt:    endAt,
		Lines:    []ports.ReservationLineInput{{ItemID: itemID, Quantity: quantity}},
	}, nil
}

// draftErrorMessage converts validator errors into human-readable messages.
func draftErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gtfield":
			msgs = append(msgs, fmt.Sprintf("%s must be after %s", field, strings.ToLower(fe.Param())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must have at least %s entry", field, fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// ReservationSubmitter sends validated drafts to the booking service. A
// second Submit while one is outstanding fails fast instead of issuing a
// duplicate create; the server's rejection message passes through verbatim.
type ReservationSubmitter struct {
	api ports.BookingAPI
	log zerolog.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewReservationSubmitter(api ports.BookingAPI, log zerolog.Logger) *ReservationSubmitter {
	return &ReservationSubmitter{api: api, log: log}
}

func (s *ReservationSubmitter) Submit(ctx context.Context, in ports.CreateReservationInput) (*domain.Reservation, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	res, err := s.api.CreateReservation(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).Int64("branch_id", in.BranchID).Msg("reservation rejected")
		return nil, err
	}

	s.log.Info().Int64("reservation_id", res.ID).Int64("branch_id", in.BranchID).Msg("reservation created")
	return res, nil
}
