// Package tokenstore holds the session's credential pair and cached profile.
//
// Only the token pair is persisted; the profile must be refetched after a
// restart. Safe for concurrent use.
package tokenstore

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/liomshq/lioms-client/internal/model"
)

// Pair is the persisted credential record. Both fields present or the pair
// is treated as absent.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Valid reports whether both tokens are present.
func (p Pair) Valid() bool { return p.AccessToken != "" && p.RefreshToken != "" }

// Persister stores the credential pair between runs.
type Persister interface {
	Load() (Pair, error)
	Save(Pair) error
	Clear() error
}

// Store is the process-wide credential and profile cache.
type Store struct {
	mu      sync.RWMutex
	pair    Pair
	user    *model.UserProfile
	persist Persister
}

// New builds a store backed by p and loads any previously persisted pair.
// A load failure is not fatal: the store just starts unauthenticated.
func New(p Persister) *Store {
	s := &Store{persist: p}
	if p != nil {
		if pair, err := p.Load(); err == nil {
			s.pair = pair
		}
	}
	return s
}

// SetTokens replaces both tokens atomically and persists the new pair.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	s.pair = Pair{AccessToken: access, RefreshToken: refresh}
	s.mu.Unlock()
	if s.persist == nil {
		return nil
	}
	return s.persist.Save(Pair{AccessToken: access, RefreshToken: refresh})
}

// SetUser replaces the cached profile. Never persisted.
func (s *Store) SetUser(u *model.UserProfile) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// User returns the cached profile, or nil if none is loaded.
func (s *Store) User() *model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Logout clears tokens and profile and wipes the persisted pair. It does not
// talk to the server or cancel in-flight requests.
func (s *Store) Logout() {
	s.mu.Lock()
	s.pair = Pair{}
	s.user = nil
	s.mu.Unlock()
	if s.persist != nil {
		_ = s.persist.Clear()
	}
}

// AccessToken returns the current access token ("" when unauthenticated).
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken
}

// Pair returns the current pair; ok is false unless both tokens are present.
func (s *Store) Pair() (Pair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair, s.pair.Valid()
}

// IsAuthenticated reports whether an access token is held.
func (s *Store) IsAuthenticated() bool { return s.AccessToken() != "" }

// HasRole reports whether the cached profile carries role.
func (s *Store) HasRole(role string) bool { return s.User().HasRole(role) }

// IsAdmin reports whether the cached profile has the Admin role.
func (s *Store) IsAdmin() bool { return s.HasRole(model.RoleAdmin) }

// IsManager reports whether the cached profile has the Manager role.
func (s *Store) IsManager() bool { return s.HasRole(model.RoleManager) }

// IsViewer reports whether the cached profile has the Viewer role.
func (s *Store) IsViewer() bool { return s.HasRole(model.RoleViewer) }

// CanWrite reports whether the cached profile may mutate data (Admin or Manager).
func (s *Store) CanWrite() bool { return s.IsAdmin() || s.IsManager() }

// ExpiresAt extracts the access token's exp claim without validating the
// signature. Zero time when no token is held or the claim is absent.
// Diagnostics only; the server remains the authority on expiry.
func (s *Store) ExpiresAt() time.Time {
	tok := s.AccessToken()
	if tok == "" {
		return time.Time{}
	}
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
