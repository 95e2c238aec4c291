package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// stubStore is a minimal TokenStore holding just a token.
type stubStore struct {
	token string
}

func (s *stubStore) Token(context.Context) (string, error)        { return s.token, nil }
func (s *stubStore) SetToken(_ context.Context, t string) error   { s.token = t; return nil }
func (s *stubStore) Username(context.Context) (string, error)     { return "", nil }
func (s *stubStore) SetUsername(context.Context, string) error    { return nil }
func (s *stubStore) Roles(context.Context) ([]string, error)      { return nil, nil }
func (s *stubStore) SetRoles(context.Context, []string) error     { return nil }
func (s *stubStore) UserID(context.Context) (int64, bool, error)  { return 0, false, nil }
func (s *stubStore) SetUserID(context.Context, int64) error       { return nil }
func (s *stubStore) Clear(context.Context) error                  { s.token = ""; return nil }

// newTestClient spins up an echo server standing in for the whole platform
// (gateway and auth service share one base URL in tests).
func newTestClient(t *testing.T, routes func(e *echo.Echo), store ports.TokenStore, opts ...Option) *Client {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	routes(e)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return New(srv.URL, srv.URL, store, zerolog.Nop(), opts...)
}

func TestClient_BearerAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/api/booking/my/reservations", func(c echo.Context) error {
			gotAuth = c.Request().Header.Get("Authorization")
			return c.JSON(http.StatusOK, []domain.Reservation{})
		})
	}, &stubStore{token: "tok123"})

	if _, err := client.MyReservations(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_BearerOmittedWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/api/booking/my/reservations", func(c echo.Context) error {
			gotAuth = c.Request().Header.Get("Authorization")
			return c.JSON(http.StatusOK, []domain.Reservation{})
		})
	}, &stubStore{})

	if _, err := client.MyReservations(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("header must be omitted when no token is stored, got %q", gotAuth)
	}
}

func TestClient_NoContent(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.DELETE("/api/catalog/provider/branches/3", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
	}, &stubStore{token: "tok"})

	if err := client.DeleteBranch(context.Background(), 3); err != nil {
		t.Fatalf("204 must map to success with absent result: %v", err)
	}
}

func TestClient_ErrorBodyKeys(t *testing.T) {
	cases := []struct {
		path string
		body map[string]string
		want string
	}{
		{"/m", map[string]string{"message": "ya existe una solicitud"}, "ya existe una solicitud"},
		{"/d", map[string]string{"detail": "branch not found"}, "branch not found"},
		{"/e", map[string]string{"error": "forbidden"}, "forbidden"},
	}

	client := newTestClient(t, func(e *echo.Echo) {
		for _, tc := range cases {
			body := tc.body
			e.GET(tc.path, func(c echo.Context) error {
				return c.JSON(http.StatusConflict, body)
			})
		}
	}, &stubStore{})

	for _, tc := range cases {
		err := client.do(context.Background(), "test", http.MethodGet, client.baseURL, tc.path, nil, false, nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s: expected APIError, got %v", tc.path, err)
		}
		if apiErr.StatusCode != http.StatusConflict || apiErr.Message != tc.want {
			t.Fatalf("%s: got %+v, want message %q", tc.path, apiErr, tc.want)
		}
	}
}

func TestClient_ErrorFallbackMessage(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/broken", func(c echo.Context) error {
			return c.HTML(http.StatusInternalServerError, "<html>boom</html>")
		})
	}, &stubStore{})

	err := client.do(context.Background(), "test", http.MethodGet, client.baseURL, "/broken", nil, false, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Error 500: Internal Server Error" {
		t.Fatalf("unexpected fallback message: %q", apiErr.Message)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	srv.Close() // nothing listens anymore

	client := New(srv.URL, srv.URL, &stubStore{}, zerolog.Nop())

	_, err := client.Branches(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("transport failure must carry status 0, got %d", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Fatalf("transport failure must carry a message")
	}
}

func TestClient_OnUnauthorizedHook(t *testing.T) {
	fired := 0
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/api/booking/my/reservations", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "token expired"})
		})
		e.GET("/api/catalog/branches", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "weird"})
		})
	}, &stubStore{token: "stale"}, WithOnUnauthorized(func() { fired++ }))

	if _, err := client.MyReservations(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if fired != 1 {
		t.Fatalf("hook must fire for auth-required 401, fired=%d", fired)
	}

	// A 401 on a public endpoint is not a session signal.
	if _, err := client.Branches(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if fired != 1 {
		t.Fatalf("hook must not fire for public calls, fired=%d", fired)
	}
}

func TestClient_ItemsQuery(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/api/catalog/items", func(c echo.Context) error {
			if c.QueryParam("branchId") != "7" || c.QueryParam("type") != "ROOM" {
				t.Errorf("unexpected query: %s", c.QueryString())
			}
			return c.JSON(http.StatusOK, []domain.Item{{ID: 1, BranchID: 7, Type: domain.ItemRoom}})
		})
	}, &stubStore{})

	items, err := client.Items(context.Background(), ports.ItemFilter{BranchID: 7, Type: domain.ItemRoom})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(items) != 1 || items[0].Type != domain.ItemRoom {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClient_CreateReservationBody(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.POST("/api/booking/reservations", func(c echo.Context) error {
			var body map[string]any
			if err := c.Bind(&body); err != nil {
				t.Errorf("bind: %v", err)
				return c.NoContent(http.StatusBadRequest)
			}
			if body["branchId"].(float64) != 1 {
				t.Errorf("unexpected branchId: %v", body["branchId"])
			}
			if body["startAt"].(string) != "2025-01-01T10:00:00" {
				t.Errorf("unexpected startAt: %v", body["startAt"])
			}
			if lines, ok := body["lines"].([]any); !ok || len(lines) != 1 {
				t.Errorf("unexpected lines: %v", body["lines"])
			}
			return c.JSON(http.StatusCreated, domain.Reservation{ID: 9, BranchID: 1, Status: domain.ReservationConfirmed})
		})
	}, &stubStore{token: "tok"})

	start, _ := domain.ParseLocalTime("2025-01-01T10:00")
	end, _ := domain.ParseLocalTime("2025-01-01T11:00")

	res, err := client.CreateReservation(context.Background(), ports.CreateReservationInput{
		BranchID: 1,
		StartAt:  start,
		EndAt:    end,
		Lines:    []ports.ReservationLineInput{{ItemID: 5, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.ID != 9 || res.Status != domain.ReservationConfirmed {
		t.Fatalf("unexpected reservation: %+v", res)
	}
}

func TestClient_MyRequest_NoneYet(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.GET("/auth/provider-requests/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"message": "No tienes solicitudes"})
		})
	}, &stubStore{token: "tok"})

	req, err := client.MyRequest(context.Background())
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req != nil {
		t.Fatalf("expected nil when no request exists, got %+v", req)
	}
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(e *echo.Echo) {
		e.POST("/auth/login", func(c echo.Context) error {
			var body map[string]string
			if err := c.Bind(&body); err != nil {
				t.Errorf("bind: %v", err)
				return c.NoContent(http.StatusBadRequest)
			}
			if body["username"] != "alice" || body["password"] != "s3cret" {
				t.Errorf("unexpected credentials: %v", body)
			}
			return c.JSON(http.StatusOK, map[string]string{"message": "ok", "token": "issued"})
		})
	}, &stubStore{})

	result, err := client.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token != "issued" {
		t.Fatalf("unexpected token: %q", result.Token)
	}
}
