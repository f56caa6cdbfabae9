package cli

import (
	"context"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/nav"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/screens"
	"github.com/dmitrijs2005/ytsummarizer/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and submits the login form.
//
// On success the session service moves the router to the tabs stack, so
// the next prompt already offers the summarizer commands. The password is
// wiped before returning. Only I/O errors are returned; a rejected login is
// reported on the form.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s := screens.NewLoginScreen(a.auth)
	s.Email, s.Password = email, string(password)
	s.Submit(ctx)

	if s.Status() == screens.Error {
		return s.Render(a.out)
	}
	printlnFn("Signed in as", email)
	return nil
}

// Signup opens the signup route, collects the account details and submits
// them. The route is popped again unless the new account was signed in
// straight away.
func (a *App) Signup(ctx context.Context) error {
	return a.visit(nav.Signup, func() error {
		email, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}

		password, err := getPassword(a.out, "Password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		confirm, err := getPassword(a.out, "Confirm password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)

		s := screens.NewSignupScreen(a.auth)
		s.Email, s.Password, s.ConfirmPassword = email, string(password), string(confirm)
		s.Submit(ctx)

		return s.Render(a.out)
	})
}

// Forgot asks for an email and requests password reset instructions.
func (a *App) Forgot(ctx context.Context) error {
	return a.visit(nav.ForgotPassword, func() error {
		email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
		if err != nil {
			return err
		}

		s := screens.NewForgotPasswordScreen(a.auth)
		s.Email = email
		s.Submit(ctx)

		return s.Render(a.out)
	})
}
