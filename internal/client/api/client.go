package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
	"github.com/tidwall/gjson"
)

const (
	graphqlPath   = "/v1/graphql"
	summariesPath = "/api/rest/summaries"

	hasuraRoleHeader = "x-hasura-role"
	hasuraRole       = "user"
)

const (
	MsgSummarizeFailed = "Failed to summarize video"
	MsgHistoryFailed   = "Failed to load history"
)

// SummarizeResult is the outcome of Summarize.
//
// Result holds the raw response envelope and Summary the message read from
// it. HistoryErr is set when the summary was produced but could not be added
// to the history; Success is not affected.
type SummarizeResult struct {
	Success    bool
	Message    string
	Result     json.RawMessage
	Summary    string
	Err        error
	HistoryErr error
}

type HistoryResult struct {
	Success bool
	Message string
	Data    []models.HistoryItem
	Err     error
}

// Client is implemented by HTTPClient and by test fakes.
type Client interface {
	Summarize(ctx context.Context, videoURL, token, userID string) SummarizeResult
	FetchHistory(ctx context.Context, token string) HistoryResult
	SaveHistory(ctx context.Context, token, userID, videoURL, summary string) error
}

type Options struct {
	BaseURL string
	HTTP    *http.Client
	// Timeout bounds one round trip. Zero leaves calls unbounded.
	Timeout time.Duration
	Metrics *Metrics
	Logger  logging.Logger
	// Now is used for history timestamps.
	Now func() time.Time
}

type HTTPClient struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
	metrics *Metrics
	log     logging.Logger
	now     func() time.Time
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(o Options) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		hc:      o.HTTP,
		timeout: o.Timeout,
		metrics: o.Metrics,
		log:     o.Logger,
		now:     o.Now,
	}
	if c.hc == nil {
		c.hc = http.DefaultClient
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Summarize submits videoURL and, on success, records the summary in the
// history of userID.
func (c *HTTPClient) Summarize(ctx context.Context, videoURL, token, userID string) SummarizeResult {
	body, err := json.Marshal(newSummarizeRequest(videoURL))
	if err != nil {
		c.log.Error(ctx, "error summarizing video", "err", err)
		return SummarizeResult{Message: MsgSummarizeFailed, Err: err}
	}

	raw, err := c.do(ctx, opSummarize, http.MethodPost, graphqlPath, token, body)
	if err != nil {
		c.log.Error(ctx, "error summarizing video", "url", videoURL, "err", err)
		return SummarizeResult{Message: MsgSummarizeFailed, Err: err}
	}

	if !gjson.ValidBytes(raw) {
		err := errors.New("summarize response is not JSON")
		c.metrics.observeDecodeFailure(opSummarize)
		c.log.Error(ctx, "error summarizing video", "url", videoURL, "err", err)
		return SummarizeResult{Message: MsgSummarizeFailed, Err: err}
	}

	res := SummarizeResult{
		Success: true,
		Result:  json.RawMessage(raw),
		Summary: SummaryMessage(raw),
	}

	if err := c.SaveHistory(ctx, token, userID, videoURL, res.Summary); err != nil {
		c.log.Warn(ctx, "summary not saved to history", "url", videoURL, "err", err)
		res.HistoryErr = err
	}
	return res
}

// FetchHistory lists the stored summaries of the token's owner. The payload
// is taken as is: either a bare array or an object with a "summaries" array.
func (c *HTTPClient) FetchHistory(ctx context.Context, token string) HistoryResult {
	raw, err := c.do(ctx, opFetchHistory, http.MethodGet, summariesPath, token, nil)
	if err != nil {
		c.log.Error(ctx, "error fetching history", "err", err)
		return HistoryResult{Message: MsgHistoryFailed, Data: []models.HistoryItem{}, Err: err}
	}

	items, err := decodeHistory(raw)
	if err != nil {
		c.metrics.observeDecodeFailure(opFetchHistory)
		c.log.Error(ctx, "error fetching history", "err", err)
		return HistoryResult{Message: MsgHistoryFailed, Data: []models.HistoryItem{}, Err: err}
	}
	return HistoryResult{Success: true, Data: items}
}

func (c *HTTPClient) SaveHistory(ctx context.Context, token, userID, videoURL, summary string) error {
	body, err := json.Marshal(saveHistoryRequest{Object: historyObject{
		Summary:   summary,
		URL:       videoURL,
		Timestamp: HistoryTimestamp(c.now()),
		UserID:    userID,
	}})
	if err != nil {
		return err
	}

	_, err = c.do(ctx, opSaveHistory, http.MethodPost, summariesPath, token, body)
	return err
}
