// Package identity talks to the identity provider that issues access tokens.
//
// The client never parses or refreshes tokens. It keeps the current Session,
// persists it between runs and tells subscribers when it appears or goes
// away; only the presence of an access token is ever checked.
package identity

import (
	"context"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
)

// Session is the opaque credential pair returned on sign-in.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

type Event int

const (
	SignedIn Event = iota + 1
	SignedOut
)

func (e Event) String() string {
	switch e {
	case SignedIn:
		return "SIGNED_IN"
	case SignedOut:
		return "SIGNED_OUT"
	default:
		return "UNKNOWN"
	}
}

// Provider is the identity backend used by the session service.
//
// SignUp returns a nil Session when the account still has to be verified
// before it can sign in.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Session() *Session
	AccessToken() string
	OnAuthStateChanged(fn func(Event, *Session)) (unsubscribe func())
}
