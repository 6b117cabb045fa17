// Package session holds the authenticated user for the lifetime of the
// application. Token acquisition is delegated to the auth provider; this
// package only derives the signed in user from the bearer token it is handed.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cashflow-zero/client/internal/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var ErrNoSession = errors.New("there is no active session")

// User is the authenticated user as far as the client needs to know it.
type User struct {
	ID    string
	Email string
}

// claims are the JWT claims the client reads. The token is not verified
// here, signature verification is the backend's job; the claims are used
// for display and for detecting expiry before a request is even made.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Store holds the current session. It is created at application start and
// torn down at sign out; registered handlers are notified on every change.
type Store struct {
	mu       sync.Mutex
	tokens   api.TokenSource
	user     *User
	loading  bool
	handlers []func(*User)

	// now is replaceable for tests.
	now func() time.Time
}

// NewStore returns a Store that derives the user from the given token source.
func NewStore(tokens api.TokenSource) *Store {
	return &Store{
		tokens:  tokens,
		loading: true,
		now:     time.Now,
	}
}

// Check resolves the current token into a user. An absent or expired token
// results in a signed out store, not an error state: the caller decides
// whether to prompt for sign in.
func (s *Store) Check(ctx context.Context) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.set(nil)
		return nil
	}

	parsed, err := s.parse(token)
	if err != nil {
		log.Warn().Err(err).Msg("session token could not be parsed, treating as signed out")
		s.set(nil)
		return nil
	}

	s.set(parsed)
	return nil
}

func (s *Store) parse(token string) (*User, error) {
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return nil, err
	}

	if c.ExpiresAt != nil && !c.ExpiresAt.After(s.now()) {
		return nil, jwt.ErrTokenExpired
	}

	return &User{ID: c.Subject, Email: c.Email}, nil
}

func (s *Store) set(user *User) {
	s.mu.Lock()
	s.user = user
	s.loading = false
	handlers := make([]func(*User), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(user)
	}
}

// User returns the current user, nil when signed out.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether the initial session resolution is still pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// OnChange registers a handler that is called with the new user whenever the
// session changes.
func (s *Store) OnChange(handler func(*User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// SignOut clears the session and notifies handlers.
func (s *Store) SignOut() {
	s.set(nil)
}

// Token implements api.TokenSource. When signed out it fails without asking
// the underlying provider so that API calls take the unauthenticated path.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	signedOut := !s.loading && s.user == nil
	s.mu.Unlock()

	if signedOut {
		return "", ErrNoSession
	}

	return s.tokens.Token(ctx)
}
