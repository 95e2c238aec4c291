package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// ProviderRequestService drives the provider-upgrade lifecycle shown to the
// user (NONE → PENDING → APPROVED/REJECTED) and the admin review actions.
// A role granted by approval only takes effect on the next login.
type ProviderRequestService struct {
	api ports.ProviderRequestAPI
	log zerolog.Logger
}

func NewProviderRequestService(api ports.ProviderRequestAPI, log zerolog.Logger) *ProviderRequestService {
	return &ProviderRequestService{api: api, log: log}
}

// Current returns the user's request, or nil when none exists.
func (s *ProviderRequestService) Current(ctx context.Context) (*domain.ProviderRequest, error) {
	return s.api.MyRequest(ctx)
}

// Submit opens a new provider request. Only the NONE state allows it;
// PENDING is view-only and APPROVED/REJECTED are terminal for display.
func (s *ProviderRequestService) Submit(ctx context.Context) (*domain.ProviderRequest, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider request state: %w", err)
	}

	status := domain.ProviderRequestNone
	if current != nil {
		status = current.Status
	}
	if !status.CanSubmit() {
		return nil, domain.ErrProviderRequestExists
	}

	req, err := s.api.SubmitRequest(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("request_id", req.ID).Msg("provider request submitted")
	return req, nil
}

// List returns requests for admin review, optionally filtered by status.
func (s *ProviderRequestService) List(ctx context.Context, status domain.ProviderRequestStatus) ([]domain.ProviderRequest, error) {
	return s.api.ListRequests(ctx, status)
}

func (s *ProviderRequestService) Approve(ctx context.Context, id int64) error {
	if err := s.api.ApproveRequest(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("request_id", id).Msg("provider request approved")
	return nil
}

func (s *ProviderRequestService) Reject(ctx context.Context, id int64) error {
	if err := s.api.RejectRequest(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("request_id", id).Msg("provider request rejected")
	return nil
}
