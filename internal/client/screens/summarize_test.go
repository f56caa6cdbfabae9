package screens

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/requests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newSummarize(f *fakeAPI, policy requests.Policy, limiter *rate.Limiter) *SummarizeScreen {
	return NewSummarizeScreen(f, staticToken("tok"), signedIn, requests.NewTracker(policy), limiter, nil)
}

func TestSummarize_Validation(t *testing.T) {
	cases := map[string]string{
		"":                          MsgURLRequired,
		"https://vimeo.com/123":     MsgURLInvalid,
		"youtube.com":               MsgURLInvalid,
		"https://example.com/watch": MsgURLInvalid,
	}
	for in, want := range cases {
		f := newFakeAPI()
		s := newSummarize(f, requests.LatestRequest, nil)
		s.SetURL(in)

		require.NoError(t, s.Submit(context.Background()))
		assert.Equal(t, Error, s.Status(), in)
		assert.Equal(t, want, s.ErrorMessage(), in)
		assert.Zero(t, f.callCount(), "invalid input never reaches the backend")
	}
}

func TestSummarize_Success(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/dQw4w9WgXcQ"] = api.SummarizeResult{Success: true, Summary: "Test <b>summary</b>"}
	s := newSummarize(f, requests.LatestRequest, nil)

	s.SetURL("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, Success, s.Status())
	summary, shown := s.Summary()
	assert.Equal(t, "Test summary", summary)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", shown)
	assert.Equal(t, []string{"tok"}, f.tokens)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	assert.Contains(t, buf.String(), "Summary (dQw4w9WgXcQ)\nTest summary")
	assert.NotContains(t, buf.String(), MsgHistoryNotSent)
}

func TestSummarize_FailureMessage(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/x"] = api.SummarizeResult{Message: api.MsgSummarizeFailed}
	s := newSummarize(f, requests.LatestRequest, nil)

	s.SetURL("https://youtu.be/x")
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, Error, s.Status())
	assert.Equal(t, api.MsgSummarizeFailed, s.ErrorMessage())

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	assert.Contains(t, buf.String(), "! Failed to summarize video")
}

func TestSummarize_HistoryWriteFailureIsShown(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/x"] = api.SummarizeResult{Success: true, Summary: "S", HistoryErr: errors.New("500")}
	s := newSummarize(f, requests.LatestRequest, nil)

	s.SetURL("https://youtu.be/x")
	require.NoError(t, s.Submit(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	assert.Contains(t, buf.String(), MsgHistoryNotSent)
}

func TestSummarize_Throttled(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/x"] = api.SummarizeResult{Success: true, Summary: "S"}
	s := newSummarize(f, requests.LatestRequest, rate.NewLimiter(rate.Limit(0.001), 1))

	s.SetURL("https://youtu.be/x")
	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, Success, s.Status())

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, Error, s.Status())
	assert.Equal(t, MsgThrottled, s.ErrorMessage())
	assert.Equal(t, 1, f.callCount())
}

// submitConcurrently starts a submission for first, waits until it reaches
// the backend, then submits second, which resolves first. first is released
// afterwards, so it resolves last.
func submitConcurrently(t *testing.T, s *SummarizeScreen, f *fakeAPI, first, second string) (firstErr, secondErr error) {
	t.Helper()
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[first] = gate
	f.mu.Unlock()

	done := make(chan error, 1)
	s.SetURL(first)
	go func() { done <- s.Submit(context.Background()) }()
	require.Equal(t, first, <-f.entered)

	s.SetURL(second)
	secondErr = s.Submit(context.Background())
	require.Equal(t, second, <-f.entered)

	close(gate)
	return <-done, secondErr
}

func TestSummarize_OutOfOrderResponses_ArrivalOrder(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/first"] = api.SummarizeResult{Success: true, Summary: "first summary"}
	f.results["https://youtu.be/second"] = api.SummarizeResult{Success: true, Summary: "second summary"}
	s := newSummarize(f, requests.ArrivalOrder, nil)

	firstErr, secondErr := submitConcurrently(t, s, f, "https://youtu.be/first", "https://youtu.be/second")
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)

	summary, shown := s.Summary()
	assert.Equal(t, "first summary", summary, "the response that resolved last is displayed")
	assert.Equal(t, "https://youtu.be/first", shown)
}

func TestSummarize_OutOfOrderResponses_LatestRequest(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/first"] = api.SummarizeResult{Success: true, Summary: "first summary"}
	f.results["https://youtu.be/second"] = api.SummarizeResult{Success: true, Summary: "second summary"}
	s := newSummarize(f, requests.LatestRequest, nil)

	firstErr, secondErr := submitConcurrently(t, s, f, "https://youtu.be/first", "https://youtu.be/second")
	require.ErrorIs(t, firstErr, requests.ErrSuperseded)
	require.NoError(t, secondErr)

	summary, _ := s.Summary()
	assert.Equal(t, "second summary", summary)
	assert.Equal(t, Success, s.Status())
}

func TestSummarize_CancelDropsResult(t *testing.T) {
	f := newFakeAPI()
	f.results["https://youtu.be/x"] = api.SummarizeResult{Success: true, Summary: "late"}
	gate := make(chan struct{})
	f.gates["https://youtu.be/x"] = gate
	s := newSummarize(f, requests.LatestRequest, nil)

	s.SetURL("https://youtu.be/x")
	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-f.entered

	s.Cancel()
	close(gate)

	require.ErrorIs(t, <-done, requests.ErrCancelled)
	summary, _ := s.Summary()
	assert.Empty(t, summary)
}
