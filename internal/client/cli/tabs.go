package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/nav"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/screens"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/telemetry"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
)

// openTab switches the tabs stack to route, dropping whatever was open on
// top of the previous tab.
func (a *App) openTab(route nav.Route) error {
	for a.router.Back() {
	}
	if route == nav.StackTabs.Root() {
		return nil
	}
	return a.router.Push(route)
}

// Summarize submits url and prints the resulting summary. An empty url
// prompts for one.
func (a *App) Summarize(ctx context.Context, url string) error {
	if err := a.openTab(nav.Summarize); err != nil {
		return err
	}

	if url == "" {
		var err error
		url, err = getSimpleText(a.reader, "Enter a YouTube URL", a.out)
		if err != nil {
			return err
		}
	}

	a.summarize.SetURL(url)
	printlnFn("Generating summary...")
	if err := a.summarize.Submit(ctx); err != nil {
		a.log.Debug(ctx, "summarize not shown", "url", url, "err", err)
	}
	return a.summarize.Render(a.out)
}

// History loads and lists the user's previous summaries.
func (a *App) History(ctx context.Context) error {
	if err := a.openTab(nav.History); err != nil {
		return err
	}
	a.history.CloseDetails()
	a.history.Load(ctx)
	return a.history.Render(a.out)
}

// Show prints the n-th entry of the last loaded history in full.
func (a *App) Show(ctx context.Context, n string) error {
	i, err := strconv.Atoi(n)
	if err != nil {
		printlnFn("Usage: show <n>")
		return err
	}
	if a.router.Current() != nav.History {
		if err := a.History(ctx); err != nil {
			return err
		}
	}
	if _, err := a.history.Select(i); err != nil {
		printlnFn(err.Error())
		return err
	}
	defer a.history.CloseDetails()
	return a.history.Render(a.out)
}

func (a *App) Profile(_ context.Context) error {
	if err := a.openTab(nav.Profile); err != nil {
		return err
	}
	return screens.NewProfileScreen(a.state, a.config.WebsiteURL, a.version()).Render(a.out)
}

// Passwd opens the change-password screen from the profile tab and returns
// to the profile once the change went through.
func (a *App) Passwd(ctx context.Context) error {
	if err := a.openTab(nav.Profile); err != nil {
		return err
	}
	if err := a.router.Push(nav.ChangePassword); err != nil {
		return err
	}

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	s := screens.NewChangePasswordScreen(a.auth)
	s.Current, s.New, s.Confirm = string(current), string(next), string(confirm)
	s.Submit(ctx)

	if err := s.Render(a.out); err != nil {
		return err
	}
	if s.Status() == screens.Success {
		a.router.Back()
	}
	return nil
}

// Logout abandons in-flight backend calls and signs out.
func (a *App) Logout(ctx context.Context) error {
	a.tracker.CancelAll()
	a.auth.Logout(ctx)
	printlnFn("Signed out")
	return nil
}

// Stats prints the backend request counters collected so far.
func (a *App) Stats(_ context.Context) error {
	if err := telemetry.WriteRequestStats(a.out, a.registry); err != nil {
		return fmt.Errorf("request stats: %w", err)
	}
	return nil
}
