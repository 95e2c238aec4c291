package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
)

type stubProviderAPI struct {
	mine      *domain.ProviderRequest
	submitted bool
	reviewed  []int64
}

func (s *stubProviderAPI) SubmitRequest(context.Context) (*domain.ProviderRequest, error) {
	s.submitted = true
	return &domain.ProviderRequest{ID: 1, Status: domain.ProviderRequestPending}, nil
}

func (s *stubProviderAPI) MyRequest(context.Context) (*domain.ProviderRequest, error) {
	return s.mine, nil
}

func (s *stubProviderAPI) ListRequests(context.Context, domain.ProviderRequestStatus) ([]domain.ProviderRequest, error) {
	return nil, nil
}

func (s *stubProviderAPI) ApproveRequest(_ context.Context, id int64) error {
	s.reviewed = append(s.reviewed, id)
	return nil
}

func (s *stubProviderAPI) RejectRequest(_ context.Context, id int64) error {
	s.reviewed = append(s.reviewed, id)
	return nil
}

func TestProviderRequestService_Submit_WhenNone(t *testing.T) {
	api := &stubProviderAPI{}
	svc := NewProviderRequestService(api, zerolog.Nop())

	req, err := svc.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !api.submitted {
		t.Fatalf("request not sent")
	}
	if req.Status != domain.ProviderRequestPending {
		t.Fatalf("unexpected status: %s", req.Status)
	}
}

func TestProviderRequestService_Submit_BlockedWhileOpen(t *testing.T) {
	for _, status := range []domain.ProviderRequestStatus{
		domain.ProviderRequestPending,
		domain.ProviderRequestApproved,
		domain.ProviderRequestRejected,
	} {
		api := &stubProviderAPI{mine: &domain.ProviderRequest{ID: 2, Status: status}}
		svc := NewProviderRequestService(api, zerolog.Nop())

		_, err := svc.Submit(context.Background())
		if !errors.Is(err, domain.ErrProviderRequestExists) {
			t.Fatalf("status %s: expected ErrProviderRequestExists, got %v", status, err)
		}
		if api.submitted {
			t.Fatalf("status %s: request must not be sent", status)
		}
	}
}

func TestProviderRequestService_Review(t *testing.T) {
	api := &stubProviderAPI{}
	svc := NewProviderRequestService(api, zerolog.Nop())

	if err := svc.Approve(context.Background(), 11); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.Reject(context.Background(), 12); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if len(api.reviewed) != 2 || api.reviewed[0] != 11 || api.reviewed[1] != 12 {
		t.Fatalf("unexpected review calls: %v", api.reviewed)
	}
}
