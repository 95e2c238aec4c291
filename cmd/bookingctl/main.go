// bookingctl is a thin command-line front end over the booking client core.
// It signs in against the auth service, browses the catalog, and creates
// reservations; all decisions live in internal/core, this file only wires
// dependencies and prints results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
	"github.com/domination/booking-client/internal/core/service"
	"github.com/domination/booking-client/internal/infrastructure/config"
	"github.com/domination/booking-client/internal/infrastructure/gateway"
	"github.com/domination/booking-client/internal/infrastructure/store"
	"github.com/domination/booking-client/pkg/logger"
)

const usage = `usage: bookingctl <command> [flags]

commands:
  login             sign in and persist the session
  logout            clear the persisted session
  whoami            show the current session
  register          create an account
  branches          list branches
  items             list items (filter by --branch, --type)
  reserve           create a reservation
  reservations      list own reservations
  provider-request  show or submit a provider upgrade request
  admin-requests    list provider requests (ADMIN)
  admin-approve     approve a provider request (ADMIN)
  admin-reject      reject a provider request (ADMIN)
  provider          manage own branches and rooms (PROVIDER)
`

type app struct {
	session  *service.SessionService
	catalog  *service.CatalogBrowser
	provider *service.ProviderCatalog
	requests *service.ProviderRequestService
	drafts   *service.DraftValidator
	submit   *service.ReservationSubmitter
	auth     ports.AuthAPI
	booking  ports.BookingAPI
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "bookingctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	ctx := context.Background()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	tokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		return err
	}

	client := gateway.New(cfg.Gateway.BaseURL, cfg.Gateway.AuthBaseURL, tokens, log,
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithOnUnauthorized(func() {
			fmt.Fprintln(os.Stderr, "session expired or not accepted, run `bookingctl login` again")
		}),
	)

	sessions := service.NewSessionService(tokens, service.NewClaimDecoder(log), log)
	if err := sessions.Restore(ctx); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, log)
	}

	a := &app{
		session:  sessions,
		catalog:  service.NewCatalogBrowser(client, log),
		provider: service.NewProviderCatalog(client, log),
		requests: service.NewProviderRequestService(client, log),
		drafts:   service.NewDraftValidator(),
		submit:   service.NewReservationSubmitter(client, log),
		auth:     client,
		booking:  client,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.session.Logout(ctx)
	case "whoami":
		return a.whoami()
	case "register":
		return a.register(ctx, rest)
	case "branches":
		return a.branches(ctx)
	case "items":
		return a.items(ctx, rest)
	case "reserve":
		return a.reserve(ctx, rest)
	case "reservations":
		return a.reservations(ctx)
	case "provider-request":
		return a.providerRequest(ctx, rest)
	case "admin-requests":
		return a.adminRequests(ctx, rest)
	case "admin-approve":
		return a.adminReview(ctx, rest, a.requests.Approve)
	case "admin-reject":
		return a.adminReview(ctx, rest, a.requests.Reject)
	case "provider":
		return a.providerCmd(ctx, rest)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := store.ConnectRedis(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	case "file", "":
		return store.NewFileStore(cfg.SessionFile()), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// serveMetrics exposes the prometheus registry on a debug listener. Only
// useful for long-lived wrappers (kiosk shells, smoke rigs); one-shot
// invocations exit before anything scrapes it.
func serveMetrics(addr string, log zerolog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics listener failed")
	}
}

// requireRoute stops a command the same way the UI guard stops a page.
func (a *app) requireRoute(requiredRole string) error {
	if d := service.CheckRoute(a.session.Current(), requiredRole); !d.Allow {
		return fmt.Errorf("not authorized, continue at %s", d.RedirectTo)
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	username := fs.StringP("username", "u", "", "account username")
	password := fs.StringP("password", "p", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("login requires --username and --password")
	}

	result, err := a.auth.Login(ctx, ports.LoginInput{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, result.Token, *username); err != nil {
		return err
	}
	fmt.Println("signed in as", *username)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	username := fs.StringP("username", "u", "", "account username")
	password := fs.StringP("password", "p", "", "account password")
	email := fs.String("email", "", "account email")
	role := fs.String("role", domain.RoleUser, "account type: USER or PROVIDER")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("register requires --username and --password")
	}

	result, err := a.auth.Register(ctx, ports.RegisterInput{
		Username: *username, Password: *password, Email: *email, RoleType: *role,
	})
	if err != nil {
		return err
	}
	if result.Token != "" {
		if err := a.session.Login(ctx, result.Token, *username); err != nil {
			return err
		}
	}
	fmt.Println("account created:", *username)
	return nil
}

func (a *app) whoami() error {
	sess := a.session.Current()
	if !sess.IsAuthenticated() {
		fmt.Println("not signed in")
		return nil
	}

	fmt.Println("username:", sess.Username)
	if sess.UserID != 0 {
		fmt.Println("user id: ", sess.UserID)
	}
	fmt.Println("roles:   ", sess.Roles)
	switch service.DashboardAffordance(sess) {
	case service.AffordanceAdmin:
		fmt.Println("panel:    admin")
	case service.AffordanceProvider:
		fmt.Println("panel:    provider")
	}
	return nil
}

func (a *app) branches(ctx context.Context) error {
	branches, err := a.catalog.Branches(ctx)
	if err != nil {
		return err
	}
	return printJSON(branches)
}

func (a *app) items(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("items", pflag.ContinueOnError)
	branchID := fs.Int64("branch", 0, "filter by branch id")
	itemType := fs.String("type", "", "filter by type: ROOM, INSTRUMENT, ACCESSORY, OTHER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.catalog.Items(ctx, ports.ItemFilter{
		BranchID: *branchID,
		Type:     domain.ItemType(*itemType),
	})
	if err != nil {
		return err
	}
	return printJSON(items)
}

func (a *app) reserve(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("reserve", pflag.ContinueOnError)
	branch := fs.String("branch", "", "branch id")
	start := fs.String("start", "", "start date-time, e.g. 2025-01-01T10:00")
	end := fs.String("end", "", "end date-time")
	item := fs.String("item", "", "item id")
	quantity := fs.String("quantity", "1", "quantity (1 for rooms)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireRoute(""); err != nil {
		return err
	}

	// Load the branch's items first so the exclusive-mode rule can run.
	var items []domain.Item
	if id, err := strconv.ParseInt(*branch, 10, 64); err == nil {
		if loaded, err := a.catalog.Items(ctx, ports.ItemFilter{BranchID: id}); err == nil {
			items = loaded
		}
	}

	input, err := a.drafts.Validate(service.DraftForm{
		BranchID: *branch, StartAt: *start, EndAt: *end, ItemID: *item, Quantity: *quantity,
	}, items)
	if err != nil {
		return err
	}

	reservation, err := a.submit.Submit(ctx, *input)
	if err != nil {
		return err
	}
	fmt.Println("reservation created:", reservation.ID)
	return printJSON(reservation)
}

func (a *app) reservations(ctx context.Context) error {
	if err := a.requireRoute(""); err != nil {
		return err
	}
	reservations, err := a.booking.MyReservations(ctx)
	if err != nil {
		return err
	}
	return printJSON(reservations)
}

func (a *app) providerRequest(ctx context.Context, args []string) error {
	if err := a.requireRoute(""); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "submit" {
		req, err := a.requests.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Println("request submitted, status:", req.Status)
		return nil
	}

	req, err := a.requests.Current(ctx)
	if err != nil {
		return err
	}
	if req == nil {
		fmt.Println("no provider request yet, submit one with `bookingctl provider-request submit`")
		return nil
	}
	return printJSON(req)
}

func (a *app) adminRequests(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("admin-requests", pflag.ContinueOnError)
	status := fs.String("status", "PENDING", "filter: PENDING, APPROVED, REJECTED or empty for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireRoute(domain.RoleAdmin); err != nil {
		return err
	}

	requests, err := a.requests.List(ctx, domain.ProviderRequestStatus(*status))
	if err != nil {
		return err
	}
	return printJSON(requests)
}

func (a *app) adminReview(ctx context.Context, args []string, action func(context.Context, int64) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one request id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("request id %q is not a number", args[0])
	}
	if err := a.requireRoute(domain.RoleAdmin); err != nil {
		return err
	}
	return action(ctx, id)
}

func (a *app) providerCmd(ctx context.Context, args []string) error {
	if err := a.requireRoute(domain.RoleProvider); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("provider subcommand required: branches, branch-create, branch-update, branch-delete, room-create")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "branches":
		branches, err := a.provider.Branches(ctx)
		if err != nil {
			return err
		}
		return printJSON(branches)
	case "branch-create", "branch-update":
		fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
		id := fs.Int64("id", 0, "branch id (update only)")
		name := fs.String("name", "", "branch name")
		address := fs.String("address", "", "branch address")
		active := fs.Bool("active", true, "branch visibility")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		in := ports.BranchInput{Name: *name, Address: *address, Active: *active}

		if cmd == "branch-create" {
			branch, err := a.provider.CreateBranch(ctx, in)
			if err != nil {
				return err
			}
			return printJSON(branch)
		}
		branch, err := a.provider.UpdateBranch(ctx, *id, in)
		if err != nil {
			return err
		}
		return printJSON(branch)
	case "branch-delete":
		if len(rest) != 1 {
			return fmt.Errorf("expected exactly one branch id")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("branch id %q is not a number", rest[0])
		}
		return a.provider.DeleteBranch(ctx, id)
	case "room-create":
		fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
		branchID := fs.Int64("branch", 0, "branch id")
		name := fs.String("name", "", "room name")
		price := fs.Float64("price", 0, "base price")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		item, err := a.provider.CreateRoom(ctx, *branchID, ports.RoomInput{Name: *name, BasePrice: *price})
		if err != nil {
			return err
		}
		return printJSON(item)
	default:
		return fmt.Errorf("unknown provider subcommand %q", cmd)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
