package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// backend is a scripted fake of the hosted GraphQL/REST service.
type backend struct {
	mu       sync.Mutex
	requests []capturedRequest

	graphqlStatus int
	graphqlBody   string
	saveStatus    int
	listStatus    int
	listBody      string
	delay         time.Duration
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, capturedRequest{Method: r.Method, Path: r.URL.Path, Headers: r.Header.Clone(), Body: body})
	b.mu.Unlock()

	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-r.Context().Done():
			return
		}
	}

	switch {
	case r.URL.Path == graphqlPath:
		writeStatus(w, b.graphqlStatus)
		_, _ = io.WriteString(w, b.graphqlBody)
	case r.URL.Path == summariesPath && r.Method == http.MethodPost:
		writeStatus(w, b.saveStatus)
		_, _ = io.WriteString(w, `{"insert_summaries_one":{"id":1}}`)
	case r.URL.Path == summariesPath:
		writeStatus(w, b.listStatus)
		_, _ = io.WriteString(w, b.listBody)
	default:
		http.NotFound(w, r)
	}
}

func writeStatus(w http.ResponseWriter, code int) {
	if code != 0 {
		w.WriteHeader(code)
	}
}

func (b *backend) captured() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]capturedRequest(nil), b.requests...)
}

var fixedNow = time.Date(2025, 3, 1, 20, 45, 10, 123_000_000, time.UTC)

func newTestClient(t *testing.T, b *backend) (*HTTPClient, *Metrics) {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	m := NewMetrics(prometheus.NewRegistry())
	c := NewHTTPClient(Options{
		BaseURL: srv.URL,
		HTTP:    srv.Client(),
		Metrics: m,
		Now:     func() time.Time { return fixedNow },
	})
	return c, m
}

func TestSummarize_Success(t *testing.T) {
	b := &backend{graphqlBody: `{"data":{"actionName":{"message":"Test summary"}}}`}
	c, m := newTestClient(t, b)

	res := c.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "tok", "user-1")

	require.True(t, res.Success)
	assert.Empty(t, res.Message)
	assert.NoError(t, res.Err)
	assert.NoError(t, res.HistoryErr)
	assert.JSONEq(t, `{"data":{"actionName":{"message":"Test summary"}}}`, string(res.Result))
	assert.Equal(t, "Test summary", res.Summary)

	reqs := b.captured()
	require.Len(t, reqs, 2)

	gql := reqs[0]
	assert.Equal(t, http.MethodPost, gql.Method)
	assert.Equal(t, graphqlPath, gql.Path)
	assert.Equal(t, "application/json", gql.Headers.Get("Content-Type"))
	assert.Equal(t, "user", gql.Headers.Get("x-hasura-role"))
	assert.Equal(t, "Bearer tok", gql.Headers.Get("authorization"))

	var sent summarizeRequest
	require.NoError(t, json.Unmarshal(gql.Body, &sent))
	assert.Equal(t, SummarizeMutation, sent.Query)
	assert.JSONEq(t, `{"arg1":{"ytube":"https://youtu.be/dQw4w9WgXcQ"}}`, string(mustJSON(t, sent.Variables)))

	save := reqs[1]
	assert.Equal(t, http.MethodPost, save.Method)
	assert.Equal(t, summariesPath, save.Path)
	assert.JSONEq(t, `{"object":{
		"summary":"Test summary",
		"url":"https://youtu.be/dQw4w9WgXcQ",
		"timestamp":"2025-03-02T02:15:10.123000",
		"user_id":"user-1"}}`, string(save.Body))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opSummarize, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opSaveHistory, outcomeOK)))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestSummarize_Failures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantIs  error
		outcome string
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrUnauthorized, outcomeUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrUnauthorized, outcomeUnauthorized},
		{"bad gateway", http.StatusBadGateway, common.ErrUnavailable, outcomeUnavailable},
		{"server error", http.StatusInternalServerError, nil, "status_500"},
		{"bad request", http.StatusBadRequest, nil, "status_400"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &backend{graphqlStatus: tc.status, graphqlBody: `{"error":"nope"}`}
			c, m := newTestClient(t, b)

			res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")

			assert.False(t, res.Success)
			assert.Equal(t, MsgSummarizeFailed, res.Message)
			require.Error(t, res.Err)
			if tc.wantIs != nil {
				assert.ErrorIs(t, res.Err, tc.wantIs)
			} else {
				var se *StatusError
				require.ErrorAs(t, res.Err, &se)
				assert.Equal(t, tc.status, se.Code)
			}
			assert.Len(t, b.captured(), 1, "history is not written after a failure")
			assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opSummarize, tc.outcome)))
		})
	}
}

func TestSummarize_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(Options{BaseURL: url})
	res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")

	assert.False(t, res.Success)
	assert.Equal(t, MsgSummarizeFailed, res.Message)
	assert.ErrorIs(t, res.Err, common.ErrUnavailable)
}

func TestSummarize_HistoryWriteFailureIsObservable(t *testing.T) {
	b := &backend{
		graphqlBody: `{"data":{"actionName":{"message":"Test summary"}}}`,
		saveStatus:  http.StatusInternalServerError,
	}
	c, _ := newTestClient(t, b)

	res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")

	assert.True(t, res.Success)
	assert.Equal(t, "Test summary", res.Summary)
	require.Error(t, res.HistoryErr)
	var se *StatusError
	assert.ErrorAs(t, res.HistoryErr, &se)
}

func TestSummarize_MalformedEnvelopeYieldsEmptySummary(t *testing.T) {
	for _, body := range []string{
		`{"errors":[{"message":"action failed"}]}`,
		`{"data":{"actionName":null}}`,
	} {
		b := &backend{graphqlBody: body}
		c, _ := newTestClient(t, b)

		res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")
		assert.True(t, res.Success, body)
		assert.Empty(t, res.Summary, body)
	}
}

func TestSummarize_NonJSONBodyFails(t *testing.T) {
	b := &backend{graphqlBody: `<html>gateway login page</html>`}
	c, m := newTestClient(t, b)

	res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")

	assert.False(t, res.Success)
	assert.Equal(t, MsgSummarizeFailed, res.Message)
	assert.Empty(t, res.Summary)
	require.Error(t, res.Err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opSummarize, outcomeDecode)))

	for _, r := range b.captured() {
		assert.NotEqual(t, summariesPath, r.Path, "nothing must be written to history")
	}
}

func TestSummarize_Timeout(t *testing.T) {
	b := &backend{delay: time.Second, graphqlBody: `{}`}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c := NewHTTPClient(Options{BaseURL: srv.URL, HTTP: srv.Client(), Timeout: 20 * time.Millisecond})
	res := c.Summarize(context.Background(), "https://youtu.be/x", "tok", "u")

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestSummarize_Cancelled(t *testing.T) {
	b := &backend{graphqlBody: `{}`}
	c, m := newTestClient(t, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := c.Summarize(ctx, "https://youtu.be/x", "tok", "u")

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opSummarize, outcomeCancelled)))
}

func TestFetchHistory(t *testing.T) {
	t.Run("empty array", func(t *testing.T) {
		b := &backend{listBody: `[]`}
		c, _ := newTestClient(t, b)

		res := c.FetchHistory(context.Background(), "tok")
		assert.True(t, res.Success)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)

		reqs := b.captured()
		require.Len(t, reqs, 1)
		assert.Equal(t, http.MethodGet, reqs[0].Method)
		assert.Equal(t, "Bearer tok", reqs[0].Headers.Get("authorization"))
		assert.Equal(t, "user", reqs[0].Headers.Get("x-hasura-role"))
	})

	t.Run("object payload", func(t *testing.T) {
		b := &backend{listBody: `{"summaries":[
			{"url":"https://youtu.be/a","summary":"A","timestamp":"2025-03-01T10:00:00.000000"},
			{"url":"https://youtu.be/a","summary":"A again","timestamp":"2025-03-01T11:00:00.000000"}]}`}
		c, _ := newTestClient(t, b)

		res := c.FetchHistory(context.Background(), "tok")
		require.True(t, res.Success)

		want := []models.HistoryItem{
			{URL: "https://youtu.be/a", Summary: "A", Timestamp: "2025-03-01T10:00:00.000000"},
			{URL: "https://youtu.be/a", Summary: "A again", Timestamp: "2025-03-01T11:00:00.000000"},
		}
		if diff := cmp.Diff(want, res.Data); diff != "" {
			t.Fatalf("history mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failure", func(t *testing.T) {
		b := &backend{listStatus: http.StatusServiceUnavailable}
		c, _ := newTestClient(t, b)

		res := c.FetchHistory(context.Background(), "tok")
		assert.False(t, res.Success)
		assert.Equal(t, MsgHistoryFailed, res.Message)
		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
		assert.ErrorIs(t, res.Err, common.ErrUnavailable)
	})

	t.Run("not json", func(t *testing.T) {
		b := &backend{listBody: `<html>`}
		c, m := newTestClient(t, b)

		res := c.FetchHistory(context.Background(), "tok")
		assert.False(t, res.Success)
		assert.Equal(t, MsgHistoryFailed, res.Message)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(opFetchHistory, outcomeDecode)))
	})
}

func TestHistoryTimestamp(t *testing.T) {
	got := HistoryTimestamp(time.Date(2024, 12, 31, 20, 0, 0, 5_000_000, time.UTC))
	assert.Equal(t, "2025-01-01T01:30:00.005000", got)

	ist := time.FixedZone("IST", int(historyOffset.Seconds()))
	local := time.Date(2024, 6, 1, 12, 0, 0, 0, ist)
	assert.Equal(t, "2024-06-01T12:00:00.000000", HistoryTimestamp(local))
}

func TestMapStatus(t *testing.T) {
	assert.NoError(t, mapStatus(200, nil))
	assert.NoError(t, mapStatus(204, nil))
	assert.ErrorIs(t, mapStatus(401, nil), common.ErrUnauthorized)
	assert.ErrorIs(t, mapStatus(504, nil), common.ErrUnavailable)

	err := mapStatus(418, []byte("teapot"))
	assert.EqualError(t, err, "backend returned 418: teapot")
}

func TestSummaryMessage(t *testing.T) {
	assert.Equal(t, "hi", SummaryMessage([]byte(`{"data":{"actionName":{"message":"hi"}}}`)))
	assert.Equal(t, "", SummaryMessage([]byte(`{}`)))
	assert.Equal(t, "", SummaryMessage(nil))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.observe(opSummarize, outcomeOK, time.Millisecond)
	m.observeDecodeFailure(opFetchHistory)
}
