// Package gateway is the single outbound request path to the booking
// platform. Every remote call goes through Client.do: it attaches the bearer
// token when the endpoint needs auth, serializes bodies, maps 204 to an
// absent result, and normalizes every failure — HTTP or transport — into a
// single *APIError carrying a human-readable message. Nothing is retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/ports"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// APIError is the uniform error every failed call yields. StatusCode is the
// HTTP status for server rejections and 0 when the request never completed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// errorBody covers the error envelopes the backends emit: the auth service
// uses "message", the API gateway "detail", the catalog service "error".
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Err     string `json:"error"`
}

// Client talks to the platform. The auth service is addressed directly
// (authBaseURL); everything else goes through the API gateway (baseURL).
type Client struct {
	baseURL     string
	authBaseURL string
	http        *http.Client
	store       ports.TokenStore
	log         zerolog.Logger

	// onUnauthorized, when set, fires after any auth-required call comes
	// back 401. The session is not cleared here; that stays a user action.
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom TLS).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithOnUnauthorized installs the 401 notification hook.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL, authBaseURL string, store ports.TokenStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		authBaseURL: authBaseURL,
		http:        &http.Client{Timeout: defaultTimeout},
		store:       store,
		log:         log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request. op is the stable operation name used for metrics
// and logging; base selects which service the path is relative to. out may
// be nil when no response body is expected; a 204 leaves out untouched.
func (c *Client) do(ctx context.Context, op, method, base, path string, body any, requiresAuth bool, out any) error {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	if requiresAuth {
		// A missing token is not an error here: the header is simply
		// omitted and the backend rejects the call.
		token, err := c.store.Token(ctx)
		if err != nil {
			c.log.Warn().Err(err).Str("op", op).Msg("token store read failed, sending unauthenticated")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		requestErrorsTotal.WithLabelValues("transport").Inc()
		c.log.Error().Err(err).Str("op", op).Str("method", method).Msg("request failed")
		return &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(op, method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized && requiresAuth && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.rejection(op, resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// rejection turns a non-2xx response into an *APIError, preferring the
// server's own message and falling back to the status line.
func (c *Client) rejection(op string, resp *http.Response) error {
	requestErrorsTotal.WithLabelValues("server").Inc()

	msg := fmt.Sprintf("Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Detail != "":
			msg = body.Detail
		case body.Err != "":
			msg = body.Err
		}
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("message", msg).Msg("request rejected")
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
