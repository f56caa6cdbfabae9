package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/identity"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/nav"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/storage"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
)

const (
	MsgLoginFailed    = "An error occurred during login"
	MsgSignupFailed   = "An error occurred during signup"
	MsgGenericFailure = "An error occurred"

	MsgResetSent       = "Password reset instructions have been sent to your email"
	MsgPasswordChanged = "Password changed successfully"
)

// Result is what every auth operation returns. Message is user-facing and may
// be empty on success.
type Result struct {
	Success bool
	Message string
}

func ok(msg string) Result { return Result{Success: true, Message: msg} }

func failed(msg string) Result { return Result{Message: msg} }

// Service implements the auth operations.
//
// Operations are not serialized: two calls running at once both write the
// user record and the last write wins.
type Service struct {
	state    *State
	store    storage.Store
	provider identity.Provider
	nav      nav.Navigator
	log      logging.Logger
	delay    time.Duration
}

// NewService wires the auth operations. delay is the simulated round trip of
// the operations that have no backend (password reset and change).
func NewService(state *State, store storage.Store, provider identity.Provider, navigator nav.Navigator, log logging.Logger, delay time.Duration) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		state:    state,
		store:    store,
		provider: provider,
		nav:      navigator,
		log:      log,
		delay:    delay,
	}
}

func (s *Service) State() *State { return s.state }

// Bootstrap resolves the startup state from the stored user record. Read and
// decode failures are logged and leave the client signed out.
func (s *Service) Bootstrap(ctx context.Context) {
	user, err := s.loadUser(ctx)
	if err != nil {
		s.log.Error(ctx, "error checking login status", "err", err)
	}

	if user == nil {
		s.nav.Replace(nav.StackAuth)
		s.state.Resolve(nil)
		return
	}

	if s.nav.Replace(nav.StackTabs) != nav.StackTabs {
		s.log.Info(ctx, "stored user has no provider session", "email", user.Email)
		s.state.Resolve(nil)
		return
	}
	s.state.Resolve(user)
}

func (s *Service) loadUser(ctx context.Context) (*models.User, error) {
	raw, present, err := s.store.Get(ctx, models.UserKey)
	if err != nil {
		return nil, err
	}
	if !present || raw == "" {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

func (s *Service) saveUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.store.Store(ctx, models.UserKey, string(b))
}

func (s *Service) Login(ctx context.Context, email, password string) Result {
	if err := validateLogin(email, password); err != nil {
		return failed(err.Error())
	}

	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return s.providerFailure(ctx, "login error", err, MsgLoginFailed)
	}
	return s.establish(ctx, sess, email, MsgLoginFailed)
}

// Signup creates the account. When the provider requires verification first
// the result is successful but nobody is signed in.
func (s *Service) Signup(ctx context.Context, email, password string) Result {
	if err := validateSignup(email, password); err != nil {
		return failed(err.Error())
	}

	sess, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return s.providerFailure(ctx, "signup error", err, MsgSignupFailed)
	}
	if sess == nil {
		return ok("")
	}
	return s.establish(ctx, sess, email, MsgSignupFailed)
}

func (s *Service) establish(ctx context.Context, sess *identity.Session, email, fault string) Result {
	user := sess.User
	if user.Email == "" {
		user.Email = email
	}

	if err := s.saveUser(ctx, user); err != nil {
		s.log.Error(ctx, "failed to store user", "err", err)
		if err := s.provider.SignOut(ctx); err != nil {
			s.log.Warn(ctx, "provider sign-out failed", "err", err)
		}
		return failed(fault)
	}

	s.state.SignIn(user)
	s.nav.Replace(nav.StackTabs)
	return ok("")
}

// providerFailure shows identity service messages as is and hides everything
// else behind the generic message of the operation.
func (s *Service) providerFailure(ctx context.Context, what string, err error, fault string) Result {
	var ie *identity.Error
	if errors.As(err, &ie) && ie.Message != "" {
		return failed(ie.Message)
	}
	s.log.Error(ctx, what, "err", err)
	return failed(fault)
}

// Logout signs out and forgets the stored user. Failures are logged only.
func (s *Service) Logout(ctx context.Context) {
	if err := s.provider.SignOut(ctx); err != nil {
		s.log.Warn(ctx, "provider sign-out failed", "err", err)
	}
	if err := s.store.Remove(ctx, models.UserKey); err != nil {
		s.log.Error(ctx, "logout error", "err", err)
	}
	s.state.SignOut()
	s.nav.Replace(nav.StackAuth)
}

// ForgotPassword validates the address and reports success. No reset request
// is sent anywhere.
func (s *Service) ForgotPassword(ctx context.Context, email string) Result {
	if err := validateForgot(email); err != nil {
		return failed(err.Error())
	}
	if err := wait(ctx, s.delay); err != nil {
		s.log.Error(ctx, "forgot password error", "err", err)
		return failed(MsgGenericFailure)
	}
	return ok(MsgResetSent)
}

// ChangePassword validates the form and reports success. The provider is
// not contacted.
func (s *Service) ChangePassword(ctx context.Context, current, next, confirm string) Result {
	if err := validatePasswordChange(current, next, confirm); err != nil {
		return failed(err.Error())
	}
	if err := wait(ctx, s.delay*3/2); err != nil {
		s.log.Error(ctx, "change password error", "err", err)
		return failed(MsgGenericFailure)
	}
	return ok(MsgPasswordChanged)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
