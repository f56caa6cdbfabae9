// Package session owns the signed-in user of the running client.
//
// State is created once at startup and handed to whoever needs it; there is
// no package-level session. Service implements the auth operations on top of
// a State, the device store and the identity provider.
package session

import (
	"sync"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
)

type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of State at one point in time.
type Snapshot struct {
	Phase     Phase
	User      *models.User
	IsLoading bool
}

// State starts in PhaseUnknown with IsLoading set. It leaves PhaseUnknown
// exactly once and never returns to it.
type State struct {
	mu        sync.RWMutex
	phase     Phase
	user      *models.User
	loading   bool
	listeners map[int]func(Snapshot)
	nextID    int
}

func NewState() *State {
	return &State{loading: true, listeners: make(map[int]func(Snapshot))}
}

// Resolve ends the startup check. A nil user means nobody is signed in.
// It reports false if the state was already resolved.
func (s *State) Resolve(user *models.User) bool {
	s.mu.Lock()
	if s.phase != PhaseUnknown {
		s.mu.Unlock()
		return false
	}
	s.apply(user)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

func (s *State) SignIn(user models.User) {
	s.mu.Lock()
	s.apply(&user)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *State) SignOut() {
	s.mu.Lock()
	s.apply(nil)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// User returns a copy of the signed-in user, or nil.
func (s *State) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe calls fn after every transition until the returned func is
// called.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// must hold s.mu
func (s *State) apply(user *models.User) {
	s.loading = false
	if user == nil {
		s.phase = PhaseUnauthenticated
		s.user = nil
		return
	}
	u := *user
	s.phase = PhaseAuthenticated
	s.user = &u
}

// must hold s.mu
func (s *State) snapshot() Snapshot {
	snap := Snapshot{Phase: s.phase, IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *State) notify(snap Snapshot) {
	s.mu.RLock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
