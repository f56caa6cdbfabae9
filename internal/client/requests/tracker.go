// Package requests tracks in-flight backend calls.
//
// Every call gets a Handle: issue, then a cancellable handle, then either a
// result or a cancellation. The Tracker decides whether a finished call may
// still touch shared state, so stale responses can be dropped by request
// identity instead of by arrival order.
package requests

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrDuplicate is returned when the same key is already in flight.
	ErrDuplicate = errors.New("request already in flight")
	// ErrSuperseded is returned when a newer request was issued meanwhile.
	ErrSuperseded = errors.New("request superseded by a newer one")
	// ErrCancelled is returned when the handle was cancelled before its
	// result arrived.
	ErrCancelled = errors.New("request cancelled")
)

type Policy int

const (
	// LatestRequest applies only the result of the most recently issued
	// request and rejects a key that is already in flight.
	LatestRequest Policy = iota
	// ArrivalOrder applies every result as it arrives. A slow early request
	// can overwrite the result of a later one.
	ArrivalOrder
)

func (p Policy) String() string {
	if p == ArrivalOrder {
		return "arrival-order"
	}
	return "latest-request"
}

// Handle identifies one issued request. Context is cancelled by Cancel,
// by Tracker.CancelAll, or once the request completes.
type Handle struct {
	ID      uuid.UUID
	Seq     uint64
	Key     string
	Context context.Context
	Cancel  context.CancelFunc
}

// Tracker guards one slot of shared state, such as the summary shown on a
// screen. It is safe for concurrent use.
type Tracker struct {
	policy Policy

	mu       sync.Mutex
	seq      uint64
	latest   uint64
	inflight map[string]*Handle
	handles  map[uuid.UUID]*Handle

	group singleflight.Group
}

func NewTracker(policy Policy) *Tracker {
	return &Tracker{
		policy:   policy,
		inflight: make(map[string]*Handle),
		handles:  make(map[uuid.UUID]*Handle),
	}
}

func (t *Tracker) Policy() Policy { return t.policy }

// Issue registers a new request for key. Under LatestRequest a key that is
// still in flight yields ErrDuplicate.
func (t *Tracker) Issue(ctx context.Context, key string) (*Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.policy == LatestRequest {
		if _, busy := t.inflight[key]; busy {
			return nil, ErrDuplicate
		}
	}

	hctx, cancel := context.WithCancel(ctx)
	t.seq++
	h := &Handle{
		ID:      uuid.New(),
		Seq:     t.seq,
		Key:     key,
		Context: hctx,
		Cancel:  cancel,
	}
	t.latest = h.Seq
	t.inflight[key] = h
	t.handles[h.ID] = h
	return h, nil
}

// Complete retires h and runs apply if the result may still be used. apply
// runs under the tracker lock so results are applied one at a time; it must
// not call back into the Tracker.
func (t *Tracker) Complete(h *Handle, apply func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	defer h.Cancel()

	if cur, ok := t.inflight[h.Key]; ok && cur.ID == h.ID {
		delete(t.inflight, h.Key)
	}
	delete(t.handles, h.ID)

	if errors.Is(h.Context.Err(), context.Canceled) {
		return ErrCancelled
	}
	if t.policy == LatestRequest && h.Seq != t.latest {
		return ErrSuperseded
	}

	if apply != nil {
		apply()
	}
	return nil
}

// CancelAll cancels every outstanding handle.
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range t.handles {
		h.Cancel()
	}
}

// Outstanding reports how many issued requests have not completed.
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handles)
}

// Do issues a handle for key, runs fn with its context and passes the
// outcome to apply when Complete allows it.
//
// Under LatestRequest concurrent calls with the same key share the first
// call's execution; only that call applies and the others get ErrDuplicate.
func Do[T any](ctx context.Context, t *Tracker, key string, fn func(context.Context) (T, error), apply func(T, error)) error {
	run := func() error {
		h, err := t.Issue(ctx, key)
		if err != nil {
			return err
		}
		v, fnErr := fn(h.Context)
		return t.Complete(h, func() { apply(v, fnErr) })
	}

	if t.policy == ArrivalOrder {
		return run()
	}

	leader := false
	_, err, _ := t.group.Do(key, func() (any, error) {
		leader = true
		return nil, run()
	})
	if !leader {
		return ErrDuplicate
	}
	return err
}
