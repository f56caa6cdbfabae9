package identity

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/storage"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
)

// SessionKey is the storage key of the persisted provider session.
const SessionKey = "identity.session"

// keeper holds the current session and fans out state changes. It is shared
// by every Provider implementation.
type keeper struct {
	mu        sync.RWMutex
	session   *Session
	listeners map[int]func(Event, *Session)
	nextID    int

	store storage.Store
	log   logging.Logger
}

func newKeeper(store storage.Store, log logging.Logger) *keeper {
	if log == nil {
		log = logging.Discard()
	}
	return &keeper{listeners: make(map[int]func(Event, *Session)), store: store, log: log}
}

// restore loads a session persisted by an earlier run. Unreadable data is
// logged and treated as signed out.
func (k *keeper) restore(ctx context.Context) {
	if k.store == nil {
		return
	}
	raw, ok, err := k.store.Get(ctx, SessionKey)
	if err != nil {
		k.log.Warn(ctx, "failed to read stored session", "err", err)
		return
	}
	if !ok {
		return
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		k.log.Warn(ctx, "stored session is malformed", "err", err)
		return
	}
	if s.AccessToken == "" {
		return
	}
	k.mu.Lock()
	k.session = &s
	k.mu.Unlock()
}

func (k *keeper) current() *Session {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.session == nil {
		return nil
	}
	s := *k.session
	return &s
}

func (k *keeper) token() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.session == nil {
		return ""
	}
	return k.session.AccessToken
}

func (k *keeper) set(ctx context.Context, s *Session) {
	k.mu.Lock()
	k.session = s
	k.mu.Unlock()

	if k.store != nil {
		var err error
		if s == nil {
			err = k.store.Remove(ctx, SessionKey)
		} else {
			var b []byte
			if b, err = json.Marshal(s); err == nil {
				err = k.store.Store(ctx, SessionKey, string(b))
			}
		}
		if err != nil {
			k.log.Warn(ctx, "failed to persist session", "err", err)
		}
	}

	ev := SignedIn
	if s == nil {
		ev = SignedOut
	}
	k.notify(ev, k.current())
}

func (k *keeper) notify(ev Event, s *Session) {
	k.mu.RLock()
	fns := make([]func(Event, *Session), 0, len(k.listeners))
	for _, fn := range k.listeners {
		fns = append(fns, fn)
	}
	k.mu.RUnlock()

	for _, fn := range fns {
		fn(ev, s)
	}
}

func (k *keeper) subscribe(fn func(Event, *Session)) func() {
	k.mu.Lock()
	id := k.nextID
	k.nextID++
	k.listeners[id] = fn
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.listeners, id)
			k.mu.Unlock()
		})
	}
}
