package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/buildinfo"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/config"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/identity"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/nav"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/requests"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/screens"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/session"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/storage"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/telemetry"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store    storage.Store
	provider identity.Provider
	state    *session.State
	svc      *session.Service
	auth     screens.Auth
	router   *nav.Router

	api      api.Client
	tracker  *requests.Tracker
	limiter  *rate.Limiter
	registry *prometheus.Registry

	reader *bufio.Reader
	out    io.Writer

	summarize *screens.SummarizeScreen
	// history is the last list shown, used by "show".
	history *screens.HistoryScreen

	unsubscribe func()
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.StorageKind, c.DataDir)
	if err != nil {
		log.Error(ctx, "error opening storage", "kind", c.StorageKind, "err", err)
		return nil, err
	}

	httpClient := &http.Client{}

	var provider identity.Provider
	switch c.IdentityMode {
	case config.IdentityRemote:
		provider = identity.NewRemote(ctx, c.AuthURL, httpClient, store, log)
	case config.IdentitySimulated:
		provider = identity.NewSimulated(ctx, c.SimulatedLatency, store, log)
	default:
		_ = store.Close()
		return nil, fmt.Errorf("unknown identity mode %q", c.IdentityMode)
	}

	registry := prometheus.NewRegistry()
	apiClient := api.NewHTTPClient(api.Options{
		BaseURL: c.BackendURL,
		HTTP:    httpClient,
		Timeout: c.RequestTimeout,
		Metrics: api.NewMetrics(registry),
		Logger:  log,
	})

	router := nav.NewRouter()
	router.GuardTabs(func() bool { return provider.AccessToken() != "" })

	state := session.NewState()
	svc := session.NewService(state, store, provider, router, log, c.SimulatedLatency)

	var limiter *rate.Limiter
	if c.SubmitRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.SubmitRate), max(c.SubmitBurst, 1))
	}

	a := &App{
		config:   c,
		log:      log,
		store:    store,
		provider: provider,
		state:    state,
		svc:      svc,
		auth:     svc,
		router:   router,
		api:      apiClient,
		tracker:  requests.NewTracker(requests.LatestRequest),
		limiter:  limiter,
		registry: registry,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.resetTabs()
	a.unsubscribe = provider.OnAuthStateChanged(a.onAuthStateChanged)
	return a, nil
}

// onAuthStateChanged follows the provider: losing the session always leads
// back to the auth stack.
func (a *App) onAuthStateChanged(ev identity.Event, _ *identity.Session) {
	a.log.Debug(context.Background(), "auth state changed", "event", ev.String())
	if ev != identity.SignedOut {
		return
	}
	a.resetTabs()
	if a.router.Stack() == nav.StackTabs {
		a.router.Replace(nav.StackAuth)
	}
}

// resetTabs gives the tab screens a fresh start, so nothing shown to one
// user is left for the next one.
func (a *App) resetTabs() {
	a.summarize = screens.NewSummarizeScreen(a.api, a.provider, a.state, a.tracker, a.limiter, a.log)
	a.history = screens.NewHistoryScreen(a.api, a.provider, a.state, time.Local)
}

// Run restores the previous session and serves the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if _, err := telemetry.ServeMetrics(ctx, a.config.MetricsAddr, a.registry, a.log); err != nil {
		a.log.Warn(ctx, "metrics disabled", "err", err)
	}

	a.svc.Bootstrap(ctx)

	fmt.Fprintln(a.out, "Welcome to YouTube Summarizer CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.tracker != nil {
		a.tracker.CancelAll()
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing storage", "err", err)
		}
	}
}

func (a *App) stack() nav.Stack {
	return a.router.Stack()
}

func (a *App) getStatus() string {
	s := string(a.router.Current())
	if u := a.state.User(); u != nil && u.Email != "" {
		s = u.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// visit opens route for the duration of fn and returns to the previous
// route afterwards, unless fn moved to another stack.
func (a *App) visit(route nav.Route, fn func() error) error {
	pushed := false
	if a.router.Current() != route {
		if err := a.router.Push(route); err != nil {
			return err
		}
		pushed = true
	}

	err := fn()

	if pushed && a.router.Current() == route {
		a.router.Back()
	}
	return err
}

func (a *App) version() string {
	return buildinfo.Version
}
