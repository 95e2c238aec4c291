package service

import (
	"encoding/json"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
)

// ClaimDecoder extracts role and user-id claims from the compact session
// token without verifying its signature. The token arrives straight from the
// auth service's response, which is the trust boundary; everything decoded
// here is therefore domain.UntrustedClaims, never a verified identity.
type ClaimDecoder struct {
	parser *jwt.Parser
	log    zerolog.Logger
}

func NewClaimDecoder(log zerolog.Logger) *ClaimDecoder {
	return &ClaimDecoder{parser: jwt.NewParser(), log: log}
}

// Decode returns the claims carried by token. Decoding the same token twice
// yields identical claims. On any failure (wrong segment count, invalid
// base64, invalid JSON) it returns zero-value claims with Valid false and
// logs the cause; it never returns an error to the caller.
func (d *ClaimDecoder) Decode(token string) domain.UntrustedClaims {
	if token == "" {
		return domain.UntrustedClaims{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		d.log.Debug().Err(err).Msg("session token claims not decodable")
		return domain.UntrustedClaims{}
	}

	out := domain.UntrustedClaims{Valid: true}

	if raw, ok := claims["authorities"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out.Roles = append(out.Roles, domain.NormalizeRole(s))
			}
		}
	}

	// The auth service emits userId as a JSON number; tolerate the string
	// form some issuers use.
	switch v := claims["userId"].(type) {
	case float64:
		out.UserID = int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			out.UserID = n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			out.UserID = n
		}
	}

	return out
}
