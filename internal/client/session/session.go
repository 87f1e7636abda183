package session

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/dmitrijs2005/sweetshop/internal/client/client"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
	"github.com/google/uuid"
)

// AuthAPI is the part of the remote API the session talks to.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// Authorizer is the outbound authorization slot, e.g. *client.Authorization.
type Authorizer interface {
	Set(token string)
	Clear()
}

// Recorder observes transitions; obs.Metrics implements it.
type Recorder interface {
	Transition(name string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(string) {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRecorder reports every state transition to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

const (
	opRegister = "register"
	opLogin    = "login"
)

var fallbackMessages = map[string]string{
	opRegister: "Registration failed",
	opLogin:    "Login failed",
}

type hydration int

const (
	hydrationPending hydration = iota
	hydrationRunning
	hydrationDone
)

// Session is the single owner of the client's identity and credential.
// It is safe for concurrent use.
type Session struct {
	api   AuthAPI
	store Store
	auth  Authorizer
	log   logging.Logger
	rec   Recorder

	mu        sync.RWMutex
	state     State
	hydration hydration
	attempt   string // id of the register/login whose result may still apply

	hydrateOnce sync.Once
	ready       chan struct{}

	pubMu      sync.Mutex
	published  uint64
	subs       map[int]func(State)
	nextSub    int
	pending    []State
	delivering bool
}

// New returns an uninitialized session; call Hydrate before trusting its
// state. Until hydration finishes the state reports Loading.
func New(api AuthAPI, store Store, auth Authorizer, opts ...Option) *Session {
	s := &Session{
		api:   api,
		store: store,
		auth:  auth,
		log:   logging.Nop(),
		rec:   nopRecorder{},
		state: State{Loading: true},
		ready: make(chan struct{}),
		subs:  make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// Hydrate restores the persisted session. It runs once; later and
// concurrent calls wait for the first one to finish. A corrupt record is
// wiped and the session starts anonymous.
func (s *Session) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		s.mu.Lock()
		s.hydration = hydrationRunning
		s.mu.Unlock()

		rec, status := s.store.Load(ctx)

		s.mu.Lock()
		switch status {
		case LoadFound:
			identity := rec.Identity
			s.state.Identity = &identity
			s.state.Credential = rec.Credential
			s.auth.Set(rec.Credential)
		case LoadCorrupt:
			s.log.Warn(ctx, "stored session is corrupt, discarding it")
			if err := s.store.Clear(ctx); err != nil {
				s.log.Warn(ctx, "clearing corrupt session failed", "error", err)
			}
			s.state.Identity = nil
			s.state.Credential = ""
			s.auth.Clear()
		}
		s.state.Loading = false
		s.hydration = hydrationDone
		snap := s.commitLocked()
		s.mu.Unlock()

		close(s.ready)
		s.log.Info(ctx, "session hydrated", "status", status.String(), "authenticated", snap.IsAuthenticated())
		s.rec.Transition("hydrated")
		s.publish(snap)
	})
}

// Ready is closed once hydration has finished.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether the current state holds an identity and a credential.
func (s *Session) IsAuthenticated() bool { return s.State().IsAuthenticated() }

// IsAdmin reports whether the signed-in identity has the admin role.
func (s *Session) IsAdmin() bool { return s.State().IsAdmin() }

// Phase reports where the session is in its lifecycle.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.hydration {
	case hydrationPending:
		return PhaseUninitialized
	case hydrationRunning:
		return PhaseHydrating
	}
	if s.state.Credential != "" && s.state.Identity != nil {
		return PhaseAuthenticated
	}
	return PhaseAnonymous
}

// Register creates an account and signs it in. On failure the session only
// records the error message; the returned error is an *AuthError.
func (s *Session) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	return s.authenticate(ctx, opRegister, func(ctx context.Context) (*models.AuthResponse, error) {
		return s.api.Register(ctx, name, email, password)
	})
}

// Login signs an existing account in, with the same contract as Register.
func (s *Session) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return s.authenticate(ctx, opLogin, func(ctx context.Context) (*models.AuthResponse, error) {
		return s.api.Login(ctx, email, password)
	})
}

func (s *Session) authenticate(ctx context.Context, op string, call func(context.Context) (*models.AuthResponse, error)) (*models.AuthResponse, error) {
	s.Hydrate(ctx)

	attempt := uuid.NewString()

	s.mu.Lock()
	s.attempt = attempt
	s.state.Loading = true
	s.state.Error = ""
	snap := s.commitLocked()
	s.mu.Unlock()
	s.publish(snap)

	resp, err := call(ctx)
	if err == nil {
		err = validateAuthResponse(resp)
	}

	s.mu.Lock()
	if s.attempt != attempt {
		s.mu.Unlock()
		s.log.Debug(ctx, "dropping stale response", "op", op, "attempt", attempt)
		return nil, &AuthError{Op: op, Message: ErrStaleAttempt.Error(), Err: ErrStaleAttempt}
	}
	s.attempt = ""
	s.state.Loading = false

	if err != nil {
		authErr := &AuthError{Op: op, Message: failureMessage(op, err), Err: err}
		s.state.Error = authErr.Message
		snap = s.commitLocked()
		s.mu.Unlock()

		s.log.Warn(ctx, op+" failed", "error", authErr.Message)
		s.rec.Transition(op + "_failed")
		s.publish(snap)
		return nil, authErr
	}

	identity := *resp.User
	s.state.Identity = &identity
	s.state.Credential = resp.Token
	if err := s.store.Save(ctx, identity, resp.Token); err != nil {
		s.log.Warn(ctx, "persisting session failed", "error", err)
	}
	s.auth.Set(resp.Token)
	snap = s.commitLocked()
	s.mu.Unlock()

	s.log.Info(ctx, op+" succeeded", "email", identity.Email, "role", identity.Role)
	s.rec.Transition(op)
	s.publish(snap)
	return resp, nil
}

// Logout drops the identity and credential everywhere. Calling it while
// signed out changes nothing. A register/login still in flight becomes
// stale and its result is dropped.
func (s *Session) Logout(ctx context.Context) {
	s.Hydrate(ctx)

	s.mu.Lock()
	wasAuthenticated := s.state.IsAuthenticated()
	s.state.Identity = nil
	s.state.Credential = ""
	s.state.Error = ""
	s.state.Loading = false
	s.attempt = ""
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing stored session failed", "error", err)
	}
	s.auth.Clear()
	snap := s.commitLocked()
	s.mu.Unlock()

	if wasAuthenticated {
		s.log.Info(ctx, "logged out")
		s.rec.Transition("logout")
	}
	s.publish(snap)
}

// UpdateIdentity replaces the signed-in identity, keeping the credential.
func (s *Session) UpdateIdentity(ctx context.Context, identity models.Identity) error {
	s.Hydrate(ctx)

	s.mu.Lock()
	if !s.state.IsAuthenticated() {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.state.Identity = &identity
	if err := s.store.SaveIdentity(ctx, identity); err != nil {
		s.log.Warn(ctx, "persisting identity failed", "error", err)
	}
	snap := s.commitLocked()
	s.mu.Unlock()

	s.rec.Transition("identity_updated")
	s.publish(snap)
	return nil
}

// ClearError forgets the last register/login error.
func (s *Session) ClearError() {
	s.mu.Lock()
	if s.state.Error == "" {
		s.mu.Unlock()
		return
	}
	s.state.Error = ""
	snap := s.commitLocked()
	s.mu.Unlock()
	s.publish(snap)
}

// Subscribe calls fn with every new snapshot, in version order, until the
// returned cancel func is called. Snapshots are delivered one at a time by
// whichever goroutine is publishing; fn may call any session method,
// including the mutators, and the snapshots those produce are delivered
// after the current one.
func (s *Session) Subscribe(fn func(State)) (cancel func()) {
	s.pubMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.pubMu.Unlock()

	return func() {
		s.pubMu.Lock()
		delete(s.subs, id)
		s.pubMu.Unlock()
	}
}

// publish queues snap for the subscribers. The first publisher to find the
// queue idle drains it with pubMu released around each callback, so a
// subscriber that changes the session only appends to the queue.
func (s *Session) publish(snap State) {
	s.pubMu.Lock()
	if snap.Version <= s.published {
		s.pubMu.Unlock()
		return
	}
	s.published = snap.Version
	s.pending = append(s.pending, snap)
	if s.delivering {
		s.pubMu.Unlock()
		return
	}
	s.delivering = true
	s.pubMu.Unlock()

	defer func() {
		s.pubMu.Lock()
		s.delivering = false
		s.pubMu.Unlock()
	}()

	for {
		s.pubMu.Lock()
		if len(s.pending) == 0 {
			s.pubMu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		ids := make([]int, 0, len(s.subs))
		for id := range s.subs {
			ids = append(ids, id)
		}
		s.pubMu.Unlock()

		slices.Sort(ids)
		for _, id := range ids {
			s.pubMu.Lock()
			fn, ok := s.subs[id]
			s.pubMu.Unlock()
			if ok {
				fn(next)
			}
		}
	}
}

// commitLocked bumps the version and returns the new snapshot.
func (s *Session) commitLocked() State {
	s.state.Version++
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	snap := s.state
	if s.state.Identity != nil {
		identity := *s.state.Identity
		snap.Identity = &identity
	}
	return snap
}

func validateAuthResponse(resp *models.AuthResponse) error {
	switch {
	case resp == nil:
		return errors.New("empty response")
	case !resp.Success:
		return &client.APIError{Status: http.StatusOK, Message: resp.Message}
	case resp.Token == "" || resp.User == nil:
		return errors.New("response carries no credential")
	case !resp.User.Complete():
		return errors.New("response carries an incomplete identity")
	}
	return nil
}

func failureMessage(op string, err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return fallbackMessages[op]
}
