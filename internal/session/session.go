// Package session orchestrates login, logout, and profile retrieval on top
// of the resilient client and the token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/liomshq/lioms-client/internal/client"
	"github.com/liomshq/lioms-client/internal/errs"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
	"github.com/liomshq/lioms-client/internal/tokenstore"
)

// profileStaleAfter is how long a fetched profile is served from cache.
const profileStaleAfter = 5 * time.Minute

// Session is the login/logout/profile lifecycle. Safe for concurrent use.
type Session struct {
	c     *client.Client
	store *tokenstore.Store
	log   *zap.Logger

	mu        sync.Mutex
	fetchedAt time.Time
	now       func() time.Time
}

// New constructs a Session. logger may be nil.
func New(c *client.Client, store *tokenstore.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{c: c, store: store, log: logger, now: time.Now}
}

// Login authenticates, stores the returned pair, and caches the fetched
// profile. On failure the server's message is surfaced and stored
// credentials are left untouched.
func (s *Session) Login(ctx context.Context, creds model.Credentials) (*model.UserProfile, error) {
	var pair model.TokenPair
	err := s.c.DoJSON(ctx, http.MethodPost, routes.Login, creds, &pair)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, fmt.Errorf("login: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.store.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		s.log.Warn("persist tokens", zap.Error(err))
	}

	user, err := s.fetchProfile(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("logged in", zap.String("user", user.Username))
	return user, nil
}

// Logout notifies the server best-effort, then unconditionally clears the
// stored pair and cached profile.
func (s *Session) Logout(ctx context.Context) {
	if s.store.IsAuthenticated() {
		if err := s.c.DoJSON(ctx, http.MethodPost, routes.Logout, nil, nil); err != nil {
			// Outcome intentionally ignored; local state clears regardless.
			s.log.Debug("logout call", zap.Error(err))
		}
	}
	s.store.Logout()
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// Profile returns the current identity, served from cache within the
// staleness window and refetched otherwise. Requires an access token.
func (s *Session) Profile(ctx context.Context) (*model.UserProfile, error) {
	if !s.store.IsAuthenticated() {
		return nil, errs.ErrNoCredentials
	}
	s.mu.Lock()
	fresh := !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < profileStaleAfter
	s.mu.Unlock()
	if fresh {
		if u := s.store.User(); u != nil {
			return u, nil
		}
	}
	return s.fetchProfile(ctx)
}

func (s *Session) fetchProfile(ctx context.Context) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := s.c.Get(ctx, routes.Me, &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	s.store.SetUser(&user)
	s.mu.Lock()
	s.fetchedAt = s.now()
	s.mu.Unlock()
	return &user, nil
}
