package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// SessionService owns the derived session state. It is constructed once per
// process and passed to consumers; the snapshot is only recomputed here, on
// Restore, Login, and Logout.
type SessionService struct {
	store   ports.TokenStore
	decoder *ClaimDecoder
	log     zerolog.Logger

	mu      sync.RWMutex
	current domain.Session
}

func NewSessionService(store ports.TokenStore, decoder *ClaimDecoder, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, decoder: decoder, log: log}
}

// Restore rebuilds the session snapshot from the persisted record. Called
// once on process start.
func (s *SessionService) Restore(ctx context.Context) error {
	token, err := s.store.Token(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	username, err := s.store.Username(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	roles, err := s.store.Roles(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	userID, _, err := s.store.UserID(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.current = domain.Session{Token: token, Username: username, Roles: roles, UserID: userID}
	s.mu.Unlock()
	return nil
}

// Login decodes the token's claims, persists the full session record, and
// flips the session to authenticated. A token whose claims cannot be decoded
// still authenticates, with an empty role set and no user id; the failure is
// logged but not surfaced, matching the auth flow this client talks to.
func (s *SessionService) Login(ctx context.Context, token, username string) error {
	claims := s.decoder.Decode(token)
	if claims.Valid {
		if err := s.store.SetRoles(ctx, claims.Roles); err != nil {
			return fmt.Errorf("login: persist roles: %w", err)
		}
		if err := s.store.SetUserID(ctx, claims.UserID); err != nil {
			return fmt.Errorf("login: persist user id: %w", err)
		}
	} else {
		s.log.Warn().Str("username", username).Msg("session token claims not decodable, session will carry no roles")
	}

	if err := s.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("login: persist token: %w", err)
	}
	if err := s.store.SetUsername(ctx, username); err != nil {
		return fmt.Errorf("login: persist username: %w", err)
	}

	s.mu.Lock()
	s.current = domain.Session{Token: token, Username: username, Roles: claims.Roles, UserID: claims.UserID}
	s.mu.Unlock()

	s.log.Info().Str("username", username).Strs("roles", claims.Roles).Msg("session established")
	return nil
}

// Logout clears the persisted record and resets every derived field. This is
// the only recovery action the core takes, and only on explicit user action.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()

	s.log.Info().Msg("session cleared")
	return nil
}

// Current returns a copy of the session snapshot.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.current
	out.Roles = append([]string(nil), s.current.Roles...)
	return out
}

// HasRole reports whether the current session holds the role, accepting the
// bare or prefixed form of the name.
func (s *SessionService) HasRole(name string) bool {
	return s.Current().HasRole(name)
}
