package domain

import (
	"errors"
	"strings"
)

const (
	RoleUser     = "USER"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// rolePrefix is the convention the auth service uses for authorities inside
// the session token ("ROLE_ADMIN"). In-process the bare name is canonical.
const rolePrefix = "ROLE_"

var ErrNotAuthenticated = errors.New("not authenticated")

// NormalizeRole strips the wire prefix, if present, from a role name.
func NormalizeRole(name string) string {
	return strings.TrimPrefix(name, rolePrefix)
}

// Session is the derived view of the persisted session record. It is
// recomputed through login/logout (and a restore on process start), never
// assembled by hand elsewhere.
type Session struct {
	Token    string
	Username string
	Roles    []string
	// UserID is 0 when the token carried no decodable userId claim.
	UserID int64
}

// IsAuthenticated reports whether a session token is present. Nothing else
// is checked locally; an expired token only shows up as a failed call.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// HasRole reports whether the session holds the given role. The query may
// use either the bare name or the prefixed wire form.
func (s Session) HasRole(name string) bool {
	want := NormalizeRole(name)
	for _, r := range s.Roles {
		if NormalizeRole(r) == want {
			return true
		}
	}
	return false
}
