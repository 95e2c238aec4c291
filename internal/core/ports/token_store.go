package ports

import "context"

// TokenStore is the persisted key/value record backing the session: the
// opaque token, the display name, the role list, and the numeric user id.
// Populated on login/registration, fully cleared on logout.
//
// Absent values are the zero forms: empty string, nil slice, and (0, false)
// for the user id. Clear removes all four fields atomically from the
// caller's point of view; a partial clear is a correctness bug. No expiry is
// enforced here — an expired token only surfaces when a later call fails.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error

	Username(ctx context.Context) (string, error)
	SetUsername(ctx context.Context, username string) error

	Roles(ctx context.Context) ([]string, error)
	SetRoles(ctx context.Context, roles []string) error

	UserID(ctx context.Context) (int64, bool, error)
	SetUserID(ctx context.Context, id int64) error

	Clear(ctx context.Context) error
}
