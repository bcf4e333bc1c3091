package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

func newAuth(t *testing.T) (AuthService, *fakeClient, *session.MemoryStore) {
	t.Helper()
	st := session.NewMemoryStore()
	fc := &fakeClient{Store: st}
	return NewAuthService(fc, st, nil), fc, st
}

func TestLogin_StoresSessionAndReturnsProfile(t *testing.T) {
	svc, fc, st := newAuth(t)
	ctx := context.Background()
	fc.AuthRet = &models.AuthResponse{Access: "T1", Refresh: "R1", User: &models.Profile{ID: 1, Username: "alice"}}

	assert.Equal(t, Anonymous, svc.State(ctx))

	p, err := svc.Login(ctx, models.LoginCredentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, models.LoginCredentials{Username: "alice", Password: "pw"}, fc.LastLogin)

	assert.Equal(t, Authenticated, svc.State(ctx))
	cur := st.Get(ctx)
	assert.Equal(t, "T1", cur.Token)
	assert.Equal(t, int64(1), cur.User.ID)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous stays anonymous", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		fc.AuthErr = backend(http.StatusBadRequest, "Unable to log in with provided credentials.", nil)

		_, err := svc.Login(ctx, models.LoginCredentials{Username: "a", Password: "b"})
		require.ErrorIs(t, err, client.ErrBackend)
		assert.Equal(t, session.Session{}, st.Get(ctx))
	})

	t.Run("existing session kept on network error", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		require.NoError(t, st.Set(ctx, session.Session{Token: "OLD", User: &models.Profile{ID: 9}}))
		fc.AuthErr = network()

		_, err := svc.Login(ctx, models.LoginCredentials{})
		require.ErrorIs(t, err, client.ErrUnavailable)
		assert.Equal(t, "OLD", st.Get(ctx).Token)
	})

	t.Run("malformed response", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		fc.AuthRet = &models.AuthResponse{Access: "T1"}

		_, err := svc.Login(ctx, models.LoginCredentials{})
		require.ErrorIs(t, err, ErrMalformedAuthResponse)
		assert.Equal(t, Anonymous, svc.State(ctx))
		assert.False(t, st.Get(ctx).Authenticated())
	})
}

func TestGoogleLogin_StoresSession(t *testing.T) {
	svc, fc, st := newAuth(t)
	ctx := context.Background()
	fc.AuthRet = &models.AuthResponse{Access: "G1", User: &models.Profile{ID: 3, Username: "gina"}}

	p, err := svc.GoogleLogin(ctx, "google-access")
	require.NoError(t, err)
	assert.Equal(t, "gina", p.Username)
	assert.Equal(t, "google-access", fc.LastGoogle)
	assert.Equal(t, "G1", st.Get(ctx).Token)
}

func TestRegister_Success(t *testing.T) {
	svc, fc, st := newAuth(t)
	ctx := context.Background()
	fc.AuthRet = &models.AuthResponse{Access: "N1", User: &models.Profile{ID: 5, Username: "new"}}

	creds := models.RegisterCredentials{Username: "new", Email: "n@x.io", Password: "pw", PasswordConfirmation: "pw"}
	_, err := svc.Register(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, creds, fc.LastRegister)
	assert.Equal(t, "N1", st.Get(ctx).Token)
}

func TestRegister_FieldErrors(t *testing.T) {
	svc, fc, st := newAuth(t)
	ctx := context.Background()
	fields := map[string][]string{
		"username":  {"A user with that username already exists."},
		"password1": {"This password is too short.", "This password is too common."},
	}
	fc.AuthErr = backend(http.StatusBadRequest, "", fields)

	_, err := svc.Register(ctx, models.RegisterCredentials{Username: "dup"})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Empty(t, vErr.Message)
	assert.Equal(t, fields, vErr.Fields)
	assert.Equal(t,
		"password1: This password is too short., This password is too common.\nusername: A user with that username already exists.",
		vErr.Error())
	assert.ErrorIs(t, err, client.ErrBackend)
	assert.Equal(t, Anonymous, svc.State(ctx))
	assert.False(t, st.Get(ctx).Authenticated())
}

func TestRegister_FlatMessage(t *testing.T) {
	svc, fc, _ := newAuth(t)
	fc.AuthErr = backend(http.StatusBadRequest, "Registration is closed", nil)

	_, err := svc.Register(context.Background(), models.RegisterCredentials{})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Registration is closed", vErr.Message)
	assert.Nil(t, vErr.Fields)
}

func TestRegister_EmptyBodyStillHasMessage(t *testing.T) {
	svc, fc, _ := newAuth(t)
	fc.AuthErr = backend(http.StatusInternalServerError, "", nil)

	_, err := svc.Register(context.Background(), models.RegisterCredentials{})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotEmpty(t, vErr.Message)
	assert.Nil(t, vErr.Fields)
}

func TestRegister_NetworkErrorPassesThrough(t *testing.T) {
	svc, fc, _ := newAuth(t)
	fc.AuthErr = network()

	_, err := svc.Register(context.Background(), models.RegisterCredentials{})
	var vErr *ValidationError
	assert.False(t, errors.As(err, &vErr))
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	loggedIn := session.Session{Token: "T1", User: &models.Profile{ID: 1}}

	t.Run("clears after backend success", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		require.NoError(t, st.Set(ctx, loggedIn))

		require.NoError(t, svc.Logout(ctx))
		assert.Equal(t, 1, fc.LogoutCalls)
		assert.Equal(t, Anonymous, svc.State(ctx))
	})

	t.Run("clears even when backend fails", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		require.NoError(t, st.Set(ctx, loggedIn))
		fc.LogoutErr = network()

		require.NoError(t, svc.Logout(ctx))
		assert.Equal(t, session.Session{}, st.Get(ctx))
	})

	t.Run("clears on backend 401", func(t *testing.T) {
		svc, fc, st := newAuth(t)
		require.NoError(t, st.Set(ctx, loggedIn))
		fc.LogoutErr = unauthorized()

		require.NoError(t, svc.Logout(ctx))
		assert.Equal(t, session.Session{}, st.Get(ctx))
	})

	t.Run("anonymous logout is a no-op", func(t *testing.T) {
		svc, fc, _ := newAuth(t)
		require.NoError(t, svc.Logout(ctx))
		require.NoError(t, svc.Logout(ctx))
		assert.Zero(t, fc.LogoutCalls)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
