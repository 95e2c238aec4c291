package ports

import "context"

// LoginInput carries the credentials sent to the auth service.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput carries the account-creation payload. RoleType is USER or
// PROVIDER; ADMIN accounts are never self-registered.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	RoleType string
}

// AuthResult is what the auth service returns on a successful login or
// registration: the opaque session token plus a display message.
type AuthResult struct {
	Token   string
	Message string
}

// AuthAPI is the authentication service surface the client consumes.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
}
