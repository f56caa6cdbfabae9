package screens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/session"
)

type staticToken string

func (t staticToken) AccessToken() string { return string(t) }

type staticUser struct{ u *models.User }

func (s staticUser) User() *models.User { return s.u }

var signedIn = staticUser{u: &models.User{ID: "123", Email: "a@example.com"}}

// fakeAPI answers Summarize from results keyed by URL. When gates holds a
// channel for the URL the call blocks until it is closed.
type fakeAPI struct {
	mu      sync.Mutex
	results map[string]api.SummarizeResult
	gates   map[string]chan struct{}
	entered chan string
	calls   []string
	tokens  []string

	history api.HistoryResult
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		results: make(map[string]api.SummarizeResult),
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 16),
	}
}

func (f *fakeAPI) Summarize(ctx context.Context, videoURL, token, userID string) api.SummarizeResult {
	f.mu.Lock()
	f.calls = append(f.calls, videoURL)
	f.tokens = append(f.tokens, token)
	gate := f.gates[videoURL]
	res := f.results[videoURL]
	f.mu.Unlock()

	f.entered <- videoURL
	if gate != nil {
		<-gate
	}
	return res
}

func (f *fakeAPI) FetchHistory(ctx context.Context, token string) api.HistoryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f.history
}

func (f *fakeAPI) SaveHistory(context.Context, string, string, string, string) error { return nil }

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeAuth returns canned results and records what it was given.
type fakeAuth struct {
	result  session.Result
	email   string
	pass    string
	logouts int
}

func (a *fakeAuth) Login(_ context.Context, email, password string) session.Result {
	a.email, a.pass = email, password
	return a.result
}

func (a *fakeAuth) Signup(_ context.Context, email, password string) session.Result {
	a.email, a.pass = email, password
	return a.result
}

func (a *fakeAuth) ForgotPassword(_ context.Context, email string) session.Result {
	a.email = email
	return a.result
}

func (a *fakeAuth) ChangePassword(_ context.Context, _, next, _ string) session.Result {
	a.pass = next
	return a.result
}

func (a *fakeAuth) Logout(context.Context) { a.logouts++ }
