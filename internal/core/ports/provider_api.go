package ports

import (
	"context"

	"github.com/domination/booking-client/internal/core/domain"
)

// ProviderRequestAPI is the provider-upgrade surface of the auth service.
// Status transitions happen server-side; the client submits and reads.
type ProviderRequestAPI interface {
	// SubmitRequest opens a new provider request for the current user.
	SubmitRequest(ctx context.Context) (*domain.ProviderRequest, error)
	// MyRequest returns the current user's request, or nil when none exists.
	MyRequest(ctx context.Context) (*domain.ProviderRequest, error)

	// ListRequests returns requests for admin review, optionally filtered
	// by status. Requires the ADMIN role server-side.
	ListRequests(ctx context.Context, status domain.ProviderRequestStatus) ([]domain.ProviderRequest, error)
	ApproveRequest(ctx context.Context, id int64) error
	RejectRequest(ctx context.Context, id int64) error
}
