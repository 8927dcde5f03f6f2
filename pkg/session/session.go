// Package session owns the signed-in user and bearer token. The Store is the
// only writer of both; everything else reads through Token, User and State.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/store"
)

// ErrNoSession is returned by operations that need a signed-in user.
var ErrNoSession = errors.New("session: not signed in")

// State of the session lifecycle.
type State int

const (
	Unknown State = iota
	Checking
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventKind tells subscribers why they were called.
type EventKind int

const (
	// Changed fires on every state or user transition.
	Changed EventKind = iota
	// Unauthorized fires when the server rejected the token of a live
	// session. Views route to sign-in on it.
	Unauthorized
)

// Event is delivered to subscribers after the store lock is released.
type Event struct {
	Kind  EventKind
	State State
}

// Verifier confirms a persisted token is still accepted.
type Verifier interface {
	Me(ctx context.Context) (*account.User, error)
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*account.AuthResponse, error)
	Register(ctx context.Context, email, username, password string) (*account.AuthResponse, error)
}

type Option func(*Store)

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store holds the session. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage store.Sessions
	state   State
	token   string
	user    *account.User

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	now func() time.Time
	log *slog.Logger
}

func New(storage store.Sessions, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		state:   Unknown,
		subs:    make(map[int]func(Event)),
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated is true while signed in, including the optimistic window
// while a persisted token is being verified.
func (s *Store) Authenticated() bool {
	st := s.State()
	return st == Authenticated || st == Checking
}

// Checking reports whether a persisted session is awaiting verification.
func (s *Store) Checking() bool {
	return s.State() == Checking
}

// Token is the token source handed to the API client.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when signed out.
func (s *Store) User() *account.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers fn for session events and returns its cancel func.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Init restores a persisted session. With no token or an expired one the
// store settles on Anonymous without touching the network. Otherwise the
// user is shown optimistically while v confirms the token.
func (s *Store) Init(ctx context.Context, v Verifier) error {
	token, user, ok := s.restore()
	if !ok {
		s.transition(Anonymous, "", nil)
		return nil
	}
	if s.expired(token) {
		s.log.Info("session: stored token expired")
		if err := s.clear(Anonymous); err != nil {
			return err
		}
		return nil
	}
	s.transition(Checking, token, user)

	fresh, err := v.Me(ctx)

	s.mu.Lock()
	if s.token != token {
		// Signed out or replaced while verifying.
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Info("session: verification failed", "err", err)
		if cerr := s.clear(Anonymous); cerr != nil {
			return cerr
		}
		return fmt.Errorf("session: verify: %w", err)
	}
	return s.establish(token, fresh)
}

// Reload re-reads storage without a network call, e.g. after another
// process signed in or out.
func (s *Store) Reload() {
	token, user, ok := s.restore()
	if !ok || s.expired(token) {
		s.transition(Anonymous, "", nil)
		return
	}
	s.transition(Authenticated, token, user)
}

func (s *Store) restore() (string, *account.User, bool) {
	token, raw, ok := s.storage.LoadSession()
	if !ok {
		return "", nil, false
	}
	var u account.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn("session: discarding unreadable user", "err", err)
		_ = s.storage.ClearSession()
		return "", nil, false
	}
	return token, &u, true
}

// expired reports whether token is a JWT whose exp has passed. Tokens are
// not verified here; the server stays the authority.
func (s *Store) expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// Login signs in and persists the returned session.
func (s *Store) Login(ctx context.Context, a Authenticator, email, password string) error {
	resp, err := a.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp.AccessToken, &resp.User)
}

// Register creates an account and signs in as it.
func (s *Store) Register(ctx context.Context, a Authenticator, email, username, password string) error {
	resp, err := a.Register(ctx, email, username, password)
	if err != nil {
		return err
	}
	return s.establish(resp.AccessToken, &resp.User)
}

func (s *Store) establish(token string, u *account.User) error {
	if token == "" || u == nil {
		return errors.New("session: empty token or user")
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	if err := s.storage.SaveSession(token, raw); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	s.transition(Authenticated, token, u)
	return nil
}

// SetUser replaces the stored user, keeping the current token.
func (s *Store) SetUser(u account.User) error {
	token := s.Token()
	if token == "" {
		return ErrNoSession
	}
	return s.establish(token, &u)
}

// Logout clears the session locally. It never calls the server.
func (s *Store) Logout() error {
	return s.clear(Anonymous)
}

// HandleUnauthorized is the API client's 401 hook. It clears the session
// and, if one was live, tells subscribers so they can route to sign-in.
func (s *Store) HandleUnauthorized() {
	wasLive := s.Authenticated()
	if err := s.clear(Anonymous); err != nil {
		s.log.Error("session: clear after 401", "err", err)
	}
	if wasLive {
		s.log.Warn("session: server rejected token")
		s.publish(Event{Kind: Unauthorized, State: Anonymous})
	}
}

func (s *Store) clear(next State) error {
	err := s.storage.ClearSession()
	s.transition(next, "", nil)
	if err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *Store) transition(next State, token string, u *account.User) {
	s.mu.Lock()
	s.state = next
	s.token = token
	if u != nil {
		cp := *u
		s.user = &cp
	} else {
		s.user = nil
	}
	s.mu.Unlock()
	s.publish(Event{Kind: Changed, State: next})
}
