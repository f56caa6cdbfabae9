// Package nav keeps track of which screen is shown.
//
// Screens live in two stacks. The auth stack is shown while nobody is signed
// in and the tabs stack once an access token is present. Replace swaps the
// whole stack; Push and Back move within the current one.
package nav

import (
	"fmt"
	"slices"
	"sync"
)

type Route string

const (
	Login          Route = "login"
	Signup         Route = "signup"
	ForgotPassword Route = "forgot-password"

	Summarize      Route = "summarize"
	History        Route = "history"
	Profile        Route = "profile"
	ChangePassword Route = "change-password"
)

type Stack string

const (
	StackAuth Stack = "auth"
	StackTabs Stack = "tabs"
)

var stackRoutes = map[Stack][]Route{
	StackAuth: {Login, Signup, ForgotPassword},
	StackTabs: {Summarize, History, Profile, ChangePassword},
}

// Root returns the first screen of s.
func (s Stack) Root() Route {
	return stackRoutes[s][0]
}

// Contains reports whether r belongs to s.
func (s Stack) Contains(r Route) bool {
	return slices.Contains(stackRoutes[s], r)
}

// Navigator is what the session service needs to move between stacks.
type Navigator interface {
	Replace(s Stack) Stack
}

// Router is safe for concurrent use.
type Router struct {
	mu      sync.Mutex
	stack   Stack
	history []Route
	guard   func() bool
	onMove  []func(Stack, Route)
}

// NewRouter starts on the auth stack.
func NewRouter() *Router {
	return &Router{stack: StackAuth, history: []Route{StackAuth.Root()}}
}

// GuardTabs installs the check that must pass before the tabs stack is shown.
// Without a guard the tabs stack is always reachable.
func (r *Router) GuardTabs(hasToken func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard = hasToken
}

// OnChange registers fn to be called after every move.
func (r *Router) OnChange(fn func(Stack, Route)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onMove = append(r.onMove, fn)
}

// Replace resets navigation to the root of s and returns the stack actually
// shown. A guarded tabs stack falls back to auth.
func (r *Router) Replace(s Stack) Stack {
	r.mu.Lock()
	if s == StackTabs && r.guard != nil && !r.guard() {
		s = StackAuth
	}
	r.stack = s
	r.history = []Route{s.Root()}
	fns, route := r.snapshot()
	r.mu.Unlock()

	r.fire(fns, s, route)
	return s
}

// Push opens route on top of the current stack.
func (r *Router) Push(route Route) error {
	r.mu.Lock()
	if !r.stack.Contains(route) {
		stack := r.stack
		r.mu.Unlock()
		return fmt.Errorf("route %q is not part of the %s stack", route, stack)
	}
	r.history = append(r.history, route)
	fns, cur := r.snapshot()
	stack := r.stack
	r.mu.Unlock()

	r.fire(fns, stack, cur)
	return nil
}

// Back pops the current route. It reports false at the root of the stack.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) <= 1 {
		r.mu.Unlock()
		return false
	}
	r.history = r.history[:len(r.history)-1]
	fns, cur := r.snapshot()
	stack := r.stack
	r.mu.Unlock()

	r.fire(fns, stack, cur)
	return true
}

func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

func (r *Router) Stack() Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack
}

// must hold r.mu
func (r *Router) snapshot() ([]func(Stack, Route), Route) {
	return slices.Clone(r.onMove), r.history[len(r.history)-1]
}

func (r *Router) fire(fns []func(Stack, Route), s Stack, route Route) {
	for _, fn := range fns {
		fn(s, route)
	}
}
