package domain

// UntrustedClaims holds the claims extracted from the session token's payload
// segment. The signature is never verified: the token was handed to us
// directly by the auth service's login response, so the contents are trusted
// by provenance only. Nothing in this type proves identity to anyone.
type UntrustedClaims struct {
	// Roles are the token's authorities, normalized to bare names.
	Roles []string
	// UserID is the numeric user id claim, 0 when absent.
	UserID int64
	// Valid is false when the token could not be decoded at all.
	Valid bool
}
