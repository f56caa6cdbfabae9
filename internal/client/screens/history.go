package screens

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/api"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
)

const (
	MsgHistoryEmpty     = "No history yet"
	MsgHistoryEmptyHint = "Summaries you generate will appear here"
)

// HistoryScreen lists past summaries. Items are shown in the order the
// backend returns them; Select opens one of them in full.
type HistoryScreen struct {
	form

	client api.Client
	tokens TokenSource
	users  UserSource
	loc    *time.Location

	items    []models.HistoryItem
	selected *models.HistoryItem
}

func NewHistoryScreen(client api.Client, tokens TokenSource, users UserSource, loc *time.Location) *HistoryScreen {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryScreen{client: client, tokens: tokens, users: users, loc: loc}
}

// Load fetches the list. Nothing is fetched while nobody is signed in.
func (s *HistoryScreen) Load(ctx context.Context) {
	if u := s.users.User(); u == nil || u.ID == "" {
		return
	}

	s.begin()
	res := s.client.FetchHistory(ctx, s.tokens.AccessToken())
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = api.MsgHistoryFailed
		}
		s.fail(msg)
		return
	}

	s.mu.Lock()
	s.items = res.Data
	s.selected = nil
	s.mu.Unlock()
	s.succeed("")
}

func (s *HistoryScreen) Items() []models.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryItem(nil), s.items...)
}

// Empty reports whether a completed load returned nothing.
func (s *HistoryScreen) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == Success && len(s.items) == 0
}

// Select opens the item at 1-based position n.
func (s *HistoryScreen) Select(n int) (models.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.items) {
		return models.HistoryItem{}, fmt.Errorf("no history item %d", n)
	}
	item := s.items[n-1]
	s.selected = &item
	return item, nil
}

func (s *HistoryScreen) CloseDetails() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *HistoryScreen) Render(w io.Writer) error {
	s.mu.Lock()
	status, errMsg := s.status, s.errMsg
	items := append([]models.HistoryItem(nil), s.items...)
	selected := s.selected
	s.mu.Unlock()

	switch {
	case status == Submitting:
		_, err := fmt.Fprintln(w, "Loading history...")
		return err
	case status == Error:
		_, err := fmt.Fprintf(w, "%s\n  (type 'history' to retry)\n", errMsg)
		return err
	case selected != nil:
		return s.renderDetails(w, *selected)
	case len(items) == 0:
		_, err := fmt.Fprintf(w, "%s\n  %s\n", MsgHistoryEmpty, MsgHistoryEmptyHint)
		return err
	}

	for i, item := range items {
		_, err := fmt.Fprintf(w, "%d. %s\n   %s\n   %s\n",
			i+1,
			item.Key(),
			Truncate(Sanitize(item.Summary), PreviewLength),
			FormatTimestamp(item.Timestamp, s.loc),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *HistoryScreen) renderDetails(w io.Writer, item models.HistoryItem) error {
	_, err := fmt.Fprintf(w, "Summary Details\n%s\n%s\n\n%s\n\nOpen Video: %s\n",
		item.URL,
		FormatTimestamp(item.Timestamp, s.loc),
		Sanitize(item.Summary),
		item.URL,
	)
	return err
}
