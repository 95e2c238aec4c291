package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// Wire types owned by the transport layer; the auth service's JSON contract
// is kept out of the ports so it can drift without touching the core.

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	RoleType string `json:"roleType"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// providerRequestResponse covers both shapes /auth/provider-requests/me
// returns: the request itself, or just a message when none exists.
type providerRequestResponse struct {
	ID        int64                        `json:"id"`
	UserID    int64                        `json:"userId"`
	Status    domain.ProviderRequestStatus `json:"status"`
	CreatedAt domain.LocalTime             `json:"createdAt"`
	Message   string                       `json:"message"`
}

func (r providerRequestResponse) toDomain() *domain.ProviderRequest {
	return &domain.ProviderRequest{ID: r.ID, UserID: r.UserID, Status: r.Status, CreatedAt: r.CreatedAt}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, "auth.login", http.MethodPost, c.authBaseURL, "/auth/login",
		credentialsBody{Username: in.Username, Password: in.Password}, false, &resp)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, Message: resp.Message}, nil
}

// Register creates an account with roleType USER or PROVIDER.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, "auth.register", http.MethodPost, c.authBaseURL, "/auth/register",
		registerBody{Username: in.Username, Password: in.Password, Email: in.Email, RoleType: in.RoleType}, false, &resp)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, Message: resp.Message}, nil
}

// SubmitRequest opens a provider upgrade request for the current user.
func (c *Client) SubmitRequest(ctx context.Context) (*domain.ProviderRequest, error) {
	var resp providerRequestResponse
	err := c.do(ctx, "auth.provider_request.submit", http.MethodPost, c.authBaseURL, "/auth/provider-requests",
		nil, true, &resp)
	if err != nil {
		return nil, err
	}
	req := resp.toDomain()
	if req.Status == domain.ProviderRequestNone {
		// The create endpoint answers with {message, id}; a fresh request
		// is always pending.
		req.Status = domain.ProviderRequestPending
	}
	return req, nil
}

// MyRequest returns the current user's provider request, nil when none.
func (c *Client) MyRequest(ctx context.Context) (*domain.ProviderRequest, error) {
	var resp providerRequestResponse
	err := c.do(ctx, "auth.provider_request.me", http.MethodGet, c.authBaseURL, "/auth/provider-requests/me",
		nil, true, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Status == domain.ProviderRequestNone {
		return nil, nil
	}
	return resp.toDomain(), nil
}

// ListRequests returns provider requests for admin review.
func (c *Client) ListRequests(ctx context.Context, status domain.ProviderRequestStatus) ([]domain.ProviderRequest, error) {
	path := "/admin/provider-requests"
	if status != domain.ProviderRequestNone {
		path += "?status=" + string(status)
	}

	var resp []providerRequestResponse
	if err := c.do(ctx, "admin.provider_requests.list", http.MethodGet, c.authBaseURL, path, nil, true, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.ProviderRequest, 0, len(resp))
	for _, r := range resp {
		out = append(out, *r.toDomain())
	}
	return out, nil
}

func (c *Client) ApproveRequest(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/provider-requests/%d/approve", id)
	return c.do(ctx, "admin.provider_requests.approve", http.MethodPost, c.authBaseURL, path, nil, true, nil)
}

func (c *Client) RejectRequest(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/provider-requests/%d/reject", id)
	return c.do(ctx, "admin.provider_requests.reject", http.MethodPost, c.authBaseURL, path, nil, true, nil)
}
