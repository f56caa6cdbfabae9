package identity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/storage"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
	"github.com/google/uuid"
)

// SimulatedUserID is the id given to every account by the simulated provider.
const SimulatedUserID = "123"

// Simulated accepts any credentials after a fixed delay. It is the default
// provider and needs no network access.
type Simulated struct {
	*keeper
	latency time.Duration
}

func NewSimulated(ctx context.Context, latency time.Duration, store storage.Store, log logging.Logger) *Simulated {
	p := &Simulated{keeper: newKeeper(store, log), latency: latency}
	p.restore(ctx)
	return p
}

func (p *Simulated) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := sleep(ctx, p.latency); err != nil {
		return nil, err
	}
	s := &Session{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		User:         models.User{ID: SimulatedUserID, Email: email},
	}
	p.set(ctx, s)
	return p.current(), nil
}

func (p *Simulated) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return p.SignIn(ctx, email, password)
}

func (p *Simulated) SignOut(ctx context.Context) error {
	p.set(ctx, nil)
	return nil
}

func (p *Simulated) Session() *Session { return p.current() }

func (p *Simulated) AccessToken() string { return p.token() }

func (p *Simulated) OnAuthStateChanged(fn func(Event, *Session)) func() {
	return p.subscribe(fn)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
