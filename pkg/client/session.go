package client

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Session tracks the logged-in user of a Client. Any 401 on a request that
// carried the session token logs the session out.
type Session struct {
	client *Client

	mu       sync.RWMutex
	user     *User
	onLogout []func()
}

func NewSession(c *Client) *Session {
	s := &Session{client: c}
	c.OnUnauthorized(s.Logout)
	return s
}

// Login authenticates and keeps the returned token on the client.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.start(result), nil
}

// Register creates an account and logs it in.
func (s *Session) Register(ctx context.Context, name, email, password string) (*User, error) {
	result, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.start(result), nil
}

// Resume validates a stored token. An expired or revoked token logs the
// session out and returns ErrUnauthorized.
func (s *Session) Resume(ctx context.Context, token string) (*User, error) {
	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.Logout()
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// NewPlotStore creates a store that is closed when the session logs out.
func (s *Session) NewPlotStore() *PlotStore {
	store := NewPlotStore(s.client)
	s.OnLogout(store.Close)
	return store
}

// OnLogout registers fn to run on every Logout, forced or explicit.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// User returns the logged-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.User() != nil
}

// Logout forgets the user and the token. The OnLogout hooks run once per
// logged-in session, however many rejected requests race to log it out.
func (s *Session) Logout() {
	s.client.SetToken("")

	s.mu.Lock()
	var hooks []func()
	if s.user != nil {
		hooks = slices.Clone(s.onLogout)
	}
	s.user = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (s *Session) start(result *AuthResult) *User {
	s.client.SetToken(result.Token)
	user := result.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user
}
