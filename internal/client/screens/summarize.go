package screens

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/requests"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
	"golang.org/x/time/rate"
)

const (
	MsgThrottled      = "Too many requests, please wait"
	MsgHistoryNotSent = "Summary could not be saved to your history"
)

// TokenSource yields the bearer token for backend calls.
type TokenSource interface {
	AccessToken() string
}

// UserSource yields the signed-in user, or nil.
type UserSource interface {
	User() *models.User
}

// SummarizeScreen submits a video link and shows the returned summary.
//
// Results go through a requests.Tracker, so which of several overlapping
// submissions ends up on screen depends on its policy.
type SummarizeScreen struct {
	form

	client  api.Client
	tokens  TokenSource
	users   UserSource
	tracker *requests.Tracker
	limiter *rate.Limiter
	log     logging.Logger

	url         string
	summary     string
	shownURL    string
	historyNote string
}

// NewSummarizeScreen builds the screen. limiter may be nil for no
// throttling.
func NewSummarizeScreen(client api.Client, tokens TokenSource, users UserSource, tracker *requests.Tracker, limiter *rate.Limiter, log logging.Logger) *SummarizeScreen {
	if tracker == nil {
		tracker = requests.NewTracker(requests.LatestRequest)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &SummarizeScreen{
		client:  client,
		tokens:  tokens,
		users:   users,
		tracker: tracker,
		limiter: limiter,
		log:     log,
	}
}

func (s *SummarizeScreen) SetURL(u string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = u
}

func (s *SummarizeScreen) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Summary returns the summary on display and the link it belongs to.
func (s *SummarizeScreen) Summary() (summary, videoURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary, s.shownURL
}

// Submit validates the link and sends it. The returned error is one of the
// requests sentinels when the outcome was not applied.
func (s *SummarizeScreen) Submit(ctx context.Context) error {
	videoURL := s.URL()

	if msg := validateVideoURL(videoURL); msg != "" {
		s.fail(msg)
		return nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.fail(MsgThrottled)
		return nil
	}

	s.begin()

	token := s.tokens.AccessToken()
	userID := ""
	if u := s.users.User(); u != nil {
		userID = u.ID
	}

	err := requests.Do(ctx, s.tracker, videoURL,
		func(ctx context.Context) (api.SummarizeResult, error) {
			return s.client.Summarize(ctx, videoURL, token, userID), nil
		},
		func(res api.SummarizeResult, _ error) {
			s.apply(videoURL, res)
		},
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, requests.ErrDuplicate), errors.Is(err, requests.ErrSuperseded), errors.Is(err, requests.ErrCancelled):
		s.log.Debug(ctx, "summary discarded", "url", videoURL, "reason", err)
		return err
	default:
		s.log.Error(ctx, "summarize error", "url", videoURL, "err", err)
		s.fail(MsgUnexpected)
		return err
	}
}

func (s *SummarizeScreen) apply(videoURL string, res api.SummarizeResult) {
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = api.MsgSummarizeFailed
		}
		s.fail(msg)
		return
	}

	s.mu.Lock()
	s.summary = Sanitize(res.Summary)
	s.shownURL = videoURL
	s.historyNote = ""
	if res.HistoryErr != nil {
		s.historyNote = MsgHistoryNotSent
	}
	s.mu.Unlock()

	s.succeed("")
}

// Cancel abandons every outstanding submission.
func (s *SummarizeScreen) Cancel() {
	s.tracker.CancelAll()
}

func (s *SummarizeScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "YouTube Summarizer\n  Get AI-powered summaries of YouTube videos"); err != nil {
		return err
	}
	if err := s.renderBanner(w); err != nil {
		return err
	}

	s.mu.Lock()
	summary, shown, note := s.summary, s.shownURL, s.historyNote
	s.mu.Unlock()

	if summary == "" && shown == "" {
		return nil
	}

	header := "Summary"
	if id := ExtractVideoID(shown); id != "" {
		header = fmt.Sprintf("Summary (%s)", id)
	}
	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", header, summary); err != nil {
		return err
	}
	if note != "" {
		if _, err := fmt.Fprintf(w, "  (%s)\n", note); err != nil {
			return err
		}
	}
	return nil
}
