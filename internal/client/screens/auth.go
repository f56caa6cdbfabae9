package screens

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/session"
)

const (
	MsgUnknownFailure   = "An unknown error occurred."
	MsgPasswordMismatch = "Passwords do not match"
	MsgSignupComplete   = "Successfully created the account. Verify the email and you can proceed to Login"
	MsgResetFallback    = "Password reset instructions sent to your email"
)

// Auth is the part of session.Service the auth screens use.
type Auth interface {
	Login(ctx context.Context, email, password string) session.Result
	Signup(ctx context.Context, email, password string) session.Result
	ForgotPassword(ctx context.Context, email string) session.Result
	ChangePassword(ctx context.Context, current, next, confirm string) session.Result
	Logout(ctx context.Context)
}

var _ Auth = (*session.Service)(nil)

type LoginScreen struct {
	form
	auth Auth

	Email    string
	Password string
}

func NewLoginScreen(auth Auth) *LoginScreen {
	return &LoginScreen{auth: auth}
}

func (s *LoginScreen) Submit(ctx context.Context) {
	s.begin()
	res := s.auth.Login(ctx, s.Email, s.Password)
	switch {
	case res.Success:
		s.succeed("")
	case res.Message != "":
		s.fail(res.Message)
	default:
		s.fail(MsgUnknownFailure)
	}
}

func (s *LoginScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Welcome Back\n  Sign in to continue summarizing videos"); err != nil {
		return err
	}
	return s.renderBanner(w)
}

type SignupScreen struct {
	form
	auth Auth

	Email           string
	Password        string
	ConfirmPassword string
}

func NewSignupScreen(auth Auth) *SignupScreen {
	return &SignupScreen{auth: auth}
}

func (s *SignupScreen) Submit(ctx context.Context) {
	s.begin()
	if s.Password != s.ConfirmPassword {
		s.fail(MsgPasswordMismatch)
		return
	}
	res := s.auth.Signup(ctx, s.Email, s.Password)
	switch {
	case res.Success:
		s.succeed(MsgSignupComplete)
	case res.Message != "":
		s.fail(res.Message)
	default:
		s.fail(MsgUnknownFailure)
	}
}

func (s *SignupScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Create Account\n  Sign up to start summarizing YouTube videos"); err != nil {
		return err
	}
	return s.renderBanner(w)
}

type ForgotPasswordScreen struct {
	form
	auth Auth

	Email string
}

func NewForgotPasswordScreen(auth Auth) *ForgotPasswordScreen {
	return &ForgotPasswordScreen{auth: auth}
}

func (s *ForgotPasswordScreen) Submit(ctx context.Context) {
	s.begin()
	res := s.auth.ForgotPassword(ctx, s.Email)
	switch {
	case res.Success && res.Message != "":
		s.succeed(res.Message)
	case res.Success:
		s.succeed(MsgResetFallback)
	default:
		s.fail(res.Message)
	}
}

func (s *ForgotPasswordScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Forgot Password\n  Enter your email to receive password reset instructions"); err != nil {
		return err
	}
	return s.renderBanner(w)
}

// ChangePasswordScreen clears its fields after a successful change.
type ChangePasswordScreen struct {
	form
	auth Auth

	Current string
	New     string
	Confirm string
}

func NewChangePasswordScreen(auth Auth) *ChangePasswordScreen {
	return &ChangePasswordScreen{auth: auth}
}

func (s *ChangePasswordScreen) Submit(ctx context.Context) {
	s.begin()
	res := s.auth.ChangePassword(ctx, s.Current, s.New, s.Confirm)
	if !res.Success {
		s.fail(res.Message)
		return
	}
	s.Current, s.New, s.Confirm = "", "", ""
	s.succeed(res.Message)
}

func (s *ChangePasswordScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Change Password"); err != nil {
		return err
	}
	return s.renderBanner(w)
}
