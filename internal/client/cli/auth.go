package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
	"github.com/dmitrijs2005/paydesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// nowFn is the clock used by Whoami.
var nowFn = time.Now

var errEmptyInput = errors.New("input required")

// ask returns preset when it is non-empty, otherwise prompts for a line.
func (a *App) ask(preset, prompt string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errEmptyInput
	}
	return s, nil
}

// Login authenticates with username and password. An empty username is
// prompted for; the password is always read from the terminal.
func (a *App) Login(ctx context.Context, username string) error {
	username, err := a.ask(username, "Enter username")
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.auth.Login(ctx, models.LoginCredentials{Username: username, Password: string(password)})
	if err != nil {
		a.report(err, "Login failed")
		return err
	}
	a.printf("Logged in as %s\n", p.DisplayName())
	return nil
}

// Register creates an account and logs it in. Field errors from the
// backend are printed one field per line.
func (a *App) Register(ctx context.Context) error {
	username, err := a.ask("", "Enter username")
	if err != nil {
		return err
	}
	email, err := a.ask("", "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	p, err := a.auth.Register(ctx, models.RegisterCredentials{
		Username:             username,
		Email:                email,
		Password:             string(password),
		PasswordConfirmation: string(confirm),
	})
	if err != nil {
		a.report(err, "Registration failed")
		return err
	}
	a.printf("Registered and logged in as %s\n", p.DisplayName())
	return nil
}

// GoogleLogin exchanges an identity-provider access token for a session.
func (a *App) GoogleLogin(ctx context.Context, token string) error {
	token, err := a.ask(token, "Paste Google access token")
	if err != nil {
		return err
	}
	p, err := a.auth.GoogleLogin(ctx, token)
	if err != nil {
		a.report(err, "Google login failed")
		return err
	}
	a.printf("Successfully logged in with Google as %s\n", p.DisplayName())
	return nil
}

// Logout always ends the local session, even if the backend is unreachable.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.println("Logout failed:", err.Error())
		return err
	}
	a.println("Logged out")
	return nil
}

// Whoami prints the stored profile and, when the token is a JWT, its expiry.
func (a *App) Whoami(ctx context.Context) error {
	s := a.auth.Current(ctx)
	if !s.Authenticated() {
		a.println("Not logged in")
		return nil
	}

	u := s.User
	a.printf("User:     %s\n", u.DisplayName())
	a.printf("Username: %s\n", u.Username)
	if u.Email != "" {
		a.printf("Email:    %s\n", u.Email)
	}
	if u.AccountValue != nil {
		a.printf("Credits:  %s\n", u.AccountValue.String())
	}

	exp, err := session.TokenExpiry(s.Token)
	switch {
	case err != nil:
		a.println("Token:    opaque")
	case exp.IsZero():
		a.println("Token:    no expiry")
	case s.Expired(nowFn()):
		a.printf("Token:    expired at %s\n", exp.Local().Format(time.DateTime))
	default:
		a.printf("Token:    valid until %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}
