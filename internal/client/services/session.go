package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

// SessionCache is the persisted part of the session. The session store is
// its only writer besides the cookie jar.
type SessionCache interface {
	LoadIdentity(ctx context.Context) (models.Identity, error)
	SaveIdentity(ctx context.Context, id models.Identity) error
	ClearIdentity(ctx context.Context) error
	Clear(ctx context.Context) error
}

// CookieJar is the in-memory side of the cookie store.
type CookieJar interface {
	Clear()
}

// SessionStore resolves the signed-in user from the backend session cookie.
// It never reads or writes the cookie itself.
type SessionStore struct {
	client client.Client
	cache  SessionCache
	jar    CookieJar
	nav    Navigator
	log    logging.Logger

	mu            sync.Mutex
	identity      models.Identity
	authenticated bool
	mounted       bool
}

// NewSessionStore builds a store. cache and jar may be nil.
func NewSessionStore(c client.Client, cache SessionCache, jar CookieJar, nav Navigator, log logging.Logger) *SessionStore {
	return &SessionStore{client: c, cache: cache, jar: jar, nav: nav, log: log, mounted: true}
}

func (s *SessionStore) Identity() models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// LastIdentity returns the identity cached by a previous run. It is a hint
// for prompts only and never makes the store authenticated.
func (s *SessionStore) LastIdentity(ctx context.Context) models.Identity {
	if s.cache == nil {
		return models.Identity{}
	}
	id, err := s.cache.LoadIdentity(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read cached identity", "error", err)
		return models.Identity{}
	}
	return id
}

// ResolveSession asks the backend who the session cookie belongs to. Any
// failure, including an unreachable backend, leaves the store
// unauthenticated and redirects to sign-in.
func (s *SessionStore) ResolveSession(ctx context.Context) (models.Identity, error) {
	id, err := s.client.Session(ctx)

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return models.Identity{}, err
	}
	if err != nil {
		s.identity, s.authenticated = models.Identity{}, false
		s.mu.Unlock()

		s.log.Info(ctx, "no valid session", "error", err)
		if s.cache != nil {
			if cerr := s.cache.ClearIdentity(ctx); cerr != nil {
				s.log.Warn(ctx, "failed to clear cached identity", "error", cerr)
			}
		}
		s.nav.ToSignIn(ctx, "")
		return models.Identity{}, err
	}
	s.identity, s.authenticated = id, true
	s.mu.Unlock()

	s.saveCache(ctx, id)
	return id, nil
}

// Login signs in with email and password. On success the backend has set the
// session cookie and the store is authenticated.
func (s *SessionStore) Login(ctx context.Context, email, password string) (models.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Identity{}, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	id, _, err := s.client.Login(ctx, email, password)
	if err != nil {
		return models.Identity{}, err
	}
	if id.Email == "" {
		id.Email = email
	}

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return id, nil
	}
	s.identity, s.authenticated = id, true
	s.mu.Unlock()

	s.saveCache(ctx, id)
	s.log.Info(ctx, "signed in", "user_id", id.UserID)
	return id, nil
}

// Signup registers a new account. It does not sign in.
func (s *SessionStore) Signup(ctx context.Context, username, email, password string) (string, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	_, msg, err := s.client.Signup(ctx, username, email, password)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Account created. You can now sign in."
	}
	return msg, nil
}

// Logout ends the session. The backend call is best effort; local state is
// cleared and the user redirected regardless.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}
	s.reset(ctx, "")
}

// HandleUnauthorized reacts to a 401 from any authenticated call.
func (s *SessionStore) HandleUnauthorized(ctx context.Context) {
	s.log.Info(ctx, "session expired")
	s.reset(ctx, common.SessionExpiredReason)
}

func (s *SessionStore) reset(ctx context.Context, reason string) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.identity, s.authenticated = models.Identity{}, false
	s.mu.Unlock()

	if s.jar != nil {
		s.jar.Clear()
	}
	s.clearCache(ctx)
	s.nav.ToSignIn(ctx, reason)
}

func (s *SessionStore) saveCache(ctx context.Context, id models.Identity) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveIdentity(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to cache identity", "error", err)
	}
}

func (s *SessionStore) clearCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn(ctx, "failed to clear session cache", "error", err)
	}
}

// Close detaches the store; late responses no longer change its state.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
}
