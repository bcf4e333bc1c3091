// Package services holds the paydesk use cases. Each service talks to the
// backend through client.Client and, for auth, owns the writes to the
// session store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
	"github.com/dmitrijs2005/paydesk/internal/logging"
)

// State is the coarse auth state of the client.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// AuthService drives Anonymous -> Authenticated -> Anonymous.
//
// Contract:
//   - Login, GoogleLogin: on success the session is stored and the profile
//     returned; on failure the backend error is returned and the session is
//     left as it was.
//   - Register: like Login, but backend rejections come back as
//     *ValidationError.
//   - Logout: notifies the backend best-effort and always clears the local
//     session. Only a local storage failure is returned.
type AuthService interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.Profile, error)
	Register(ctx context.Context, creds models.RegisterCredentials) (*models.Profile, error)
	GoogleLogin(ctx context.Context, accessToken string) (*models.Profile, error)
	Logout(ctx context.Context) error
	State(ctx context.Context) State
	Current(ctx context.Context) session.Session
}

type authService struct {
	client client.Client
	store  session.Store
	logger logging.Logger
}

func NewAuthService(c client.Client, store session.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, store: store, logger: logger.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, creds models.LoginCredentials) (*models.Profile, error) {
	resp, err := a.client.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.persist(ctx, resp)
}

func (a *authService) Register(ctx context.Context, creds models.RegisterCredentials) (*models.Profile, error) {
	resp, err := a.client.Register(ctx, creds)
	if err != nil {
		return nil, newValidationError(err)
	}
	return a.persist(ctx, resp)
}

func (a *authService) GoogleLogin(ctx context.Context, accessToken string) (*models.Profile, error) {
	resp, err := a.client.GoogleLogin(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("google login: %w", err)
	}
	return a.persist(ctx, resp)
}

// persist stores the (access, user) pair from a successful auth response.
func (a *authService) persist(ctx context.Context, resp *models.AuthResponse) (*models.Profile, error) {
	if resp == nil || resp.Access == "" || resp.User == nil {
		return nil, ErrMalformedAuthResponse
	}
	if err := a.store.Set(ctx, session.Session{Token: resp.Access, User: resp.User}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info(ctx, "logged in", "user", resp.User.Username)
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if a.State(ctx) == Authenticated {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err)
		}
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) State(ctx context.Context) State {
	if a.store.Get(ctx).Authenticated() {
		return Authenticated
	}
	return Anonymous
}

func (a *authService) Current(ctx context.Context) session.Session {
	return a.store.Get(ctx)
}
