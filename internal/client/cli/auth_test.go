package cli

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/services"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

func TestLogin_PromptsAndStoresSession(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"alice"}, "pw")
	ctx := context.Background()

	require.NoError(t, ta.Login(ctx, ""))
	assert.Equal(t, models.LoginCredentials{Username: "alice", Password: "pw"}, ta.auth.lastLogin)
	assert.True(t, ta.isLoggedIn(ctx))
	assert.Contains(t, ta.out.String(), "Logged in as alice")
}

func TestLogin_UsernameArgumentSkipsPrompt(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, nil, "pw")

	require.NoError(t, ta.Login(context.Background(), "bob"))
	assert.Equal(t, "bob", ta.auth.lastLogin.Username)
}

func TestLogin_FailureIsReported(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, nil, "bad")
	ta.auth.loginErr = &client.APIError{Kind: client.KindBackend, Status: http.StatusBadRequest,
		Message: "Unable to log in with provided credentials."}

	err := ta.Login(context.Background(), "alice")
	require.Error(t, err)
	assert.False(t, ta.isLoggedIn(context.Background()))
	assert.Contains(t, ta.out.String(), "Login failed: Unable to log in with provided credentials.")
}

func TestLogin_EmptyUsername(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{""}, "pw")

	require.ErrorIs(t, ta.Login(context.Background(), ""), errEmptyInput)
	assert.Empty(t, ta.auth.lastLogin.Username)
}

func TestRegister_FieldErrorsPrintedPerLine(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"dup", "dup@example.com"}, "pw")
	ta.auth.regErr = &services.ValidationError{Fields: map[string][]string{
		"username":  {"A user with that username already exists."},
		"password1": {"This password is too short.", "This password is too common."},
	}}

	err := ta.Register(context.Background())
	require.Error(t, err)
	assert.Equal(t, models.RegisterCredentials{
		Username: "dup", Email: "dup@example.com", Password: "pw", PasswordConfirmation: "pw",
	}, ta.auth.lastReg)
	assert.Contains(t, ta.out.String(),
		"password1: This password is too short., This password is too common.\nusername: A user with that username already exists.\n")
	assert.False(t, ta.isLoggedIn(context.Background()))
}

func TestRegister_Success(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"carol", "c@example.com"}, "pw")

	require.NoError(t, ta.Register(context.Background()))
	assert.Contains(t, ta.out.String(), "Registered and logged in as carol")
}

func TestGoogleLogin(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"pasted-token"}, "")

	require.NoError(t, ta.GoogleLogin(context.Background(), ""))
	assert.Equal(t, "pasted-token", ta.auth.lastGoogle)
	assert.Contains(t, ta.out.String(), "Successfully logged in with Google")
}

func TestLogout_EndsSession(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.loginAs(t, "alice")

	require.NoError(t, ta.Logout(ctx))
	assert.False(t, ta.isLoggedIn(ctx))
	assert.Equal(t, "Logged out\n", ta.out.String())
}

func TestWhoami(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		ta := newTestApp(t)
		require.NoError(t, ta.Whoami(ctx))
		assert.Equal(t, "Not logged in\n", ta.out.String())
	})

	t.Run("jwt with expiry", func(t *testing.T) {
		ta := newTestApp(t)
		exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		require.NoError(t, ta.store.Set(ctx, session.Session{Token: tok, User: &models.Profile{
			Username: "alice", FirstName: "Alice", LastName: "Liddell", Email: "a@x.io",
		}}))

		orig := nowFn
		nowFn = func() time.Time { return exp.Add(-time.Hour) }
		t.Cleanup(func() { nowFn = orig })

		require.NoError(t, ta.Whoami(ctx))
		out := ta.out.String()
		assert.Contains(t, out, "User:     Alice Liddell")
		assert.Contains(t, out, "Email:    a@x.io")
		assert.Contains(t, out, "valid until "+exp.Local().Format(time.DateTime))
	})

	t.Run("expired jwt", func(t *testing.T) {
		ta := newTestApp(t)
		exp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		require.NoError(t, ta.store.Set(ctx, session.Session{Token: tok, User: &models.Profile{Username: "alice"}}))

		require.NoError(t, ta.Whoami(ctx))
		assert.Contains(t, ta.out.String(), "expired at")
	})

	t.Run("opaque token", func(t *testing.T) {
		ta := newTestApp(t)
		ta.loginAs(t, "alice")
		require.NoError(t, ta.Whoami(ctx))
		assert.Contains(t, ta.out.String(), "Token:    opaque")
	})
}
