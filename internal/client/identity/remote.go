package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/storage"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
)

const (
	signInPath  = "/v1/signin/email-password"
	signUpPath  = "/v1/signup/email-password"
	signOutPath = "/v1/signout"
)

// Error is a failure reported by the identity service itself. Message is
// meant to be shown to the user as is.
//
// Server faults (5xx) never carry a Message; their text is kept in Detail
// for logs only.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"-"`
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Detail != "":
		return fmt.Sprintf("identity service returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("identity service returned %d", e.Status)
}

func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return common.ErrUnauthorized
	case e.Status >= 500:
		return common.ErrUnavailable
	default:
		return nil
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionPayload struct {
	Session *Session `json:"session"`
}

// Remote signs in against an nhost-compatible auth service.
type Remote struct {
	*keeper
	baseURL string
	hc      *http.Client
}

func NewRemote(ctx context.Context, baseURL string, hc *http.Client, store storage.Store, log logging.Logger) *Remote {
	if hc == nil {
		hc = http.DefaultClient
	}
	p := &Remote{
		keeper:  newKeeper(store, log),
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
	}
	p.restore(ctx)
	return p
}

func (p *Remote) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var out sessionPayload
	if err := p.post(ctx, signInPath, "", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Session == nil || out.Session.AccessToken == "" {
		return nil, fmt.Errorf("sign-in response carries no session: %w", common.ErrInternal)
	}
	p.set(ctx, out.Session)
	return p.current(), nil
}

func (p *Remote) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var out sessionPayload
	if err := p.post(ctx, signUpPath, "", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Session == nil || out.Session.AccessToken == "" {
		return nil, nil
	}
	p.set(ctx, out.Session)
	return p.current(), nil
}

// SignOut revokes the refresh token on the server. The local session is
// dropped even if the call fails.
func (p *Remote) SignOut(ctx context.Context) error {
	s := p.current()
	if s == nil {
		return nil
	}
	err := p.post(ctx, signOutPath, s.AccessToken, map[string]string{"refreshToken": s.RefreshToken}, nil)
	p.set(ctx, nil)
	return err
}

func (p *Remote) Session() *Session { return p.current() }

func (p *Remote) AccessToken() string { return p.token() }

func (p *Remote) OnAuthStateChanged(fn func(Event, *Session)) func() {
	return p.subscribe(fn)
}

func (p *Remote) post(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{}
		_ = json.Unmarshal(data, e)
		e.Status = resp.StatusCode
		if e.Status >= 500 {
			e.Detail, e.Message = e.Message, ""
		}
		return e
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
