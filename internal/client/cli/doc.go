// Package cli provides the interactive summarizer command-line client.
//
// It wires configuration, device storage, the identity provider, the session
// service and the backend client, then runs a REPL whose commands depend on
// the current navigation stack:
//
//   - signed out: login, signup, forgot
//   - signed in: summarize, history, show, profile, passwd, logout, stats
//
// The REPL is started via App.Run(ctx), which restores the previous session
// first and blocks until the user exits. See App and runREPL for details.
package cli
