package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/nav"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	stack() nav.Stack

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error

	Summarize(ctx context.Context, url string) error
	History(ctx context.Context) error
	Show(ctx context.Context, n string) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Logout(ctx context.Context) error
	Stats(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the summarizer CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Which commands exist depends on the current
// navigation stack. Unknown commands are reported back to the user. The loop
// exits on EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in (auth stack):
//	  - help             show available commands
//	  - login            sign in
//	  - signup           create an account
//	  - forgot           request password reset instructions
//	  - exit | quit      leave the program
//
//	Logged in (tabs stack):
//	  - help             show available commands
//	  - summarize <url>  summarize a YouTube video (alias: s)
//	  - history          list previous summaries (alias: h)
//	  - show <n>         show history item n in full
//	  - profile          show the account
//	  - passwd           change password
//	  - logout           sign out
//	  - stats            backend request counters
//	  - exit | quit      leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("yts> %s > ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.stack() == nav.StackTabs {
				printlnFn("Available commands: (s)ummarize <url>, (h)istory, show <n>, profile, passwd, logout, stats, exit")
			} else {
				printlnFn("Available commands: login, signup, forgot, exit")
			}
			continue
		}

		if a.stack() == nav.StackTabs {
			dispatchTabs(ctx, a, cmd, args)
		} else {
			dispatchAuth(ctx, a, cmd)
		}
	}
}

func dispatchAuth(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "login":
		_ = a.Login(ctx)
	case "signup", "register":
		_ = a.Signup(ctx)
	case "forgot":
		_ = a.Forgot(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchTabs(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "s", "summarize":
		_ = a.Summarize(ctx, strings.Join(args, " "))
	case "h", "history":
		_ = a.History(ctx)
	case "show":
		if len(args) == 0 {
			printlnFn("Usage: show <n>")
			return
		}
		_ = a.Show(ctx, args[0])
	case "profile":
		_ = a.Profile(ctx)
	case "passwd":
		_ = a.Passwd(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "stats":
		_ = a.Stats(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
