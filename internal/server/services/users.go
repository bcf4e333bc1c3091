package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrijs2005/paydesk/internal/common"
	"github.com/dmitrijs2005/paydesk/internal/server/auth"
	"github.com/dmitrijs2005/paydesk/internal/server/config"
	"github.com/dmitrijs2005/paydesk/internal/server/models"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is what every successful login-like call returns.
type AuthResult struct {
	TokenPair
	User models.User
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// GoogleIdentity is what a verified Google access token resolves to.
type GoogleIdentity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// GoogleVerifier resolves an access token issued by Google.
type GoogleVerifier func(ctx context.Context, accessToken string) (GoogleIdentity, error)

// DevGoogleVerifier accepts tokens of the form "dev:<email>" and nothing
// else. It stands in for Google's tokeninfo endpoint.
func DevGoogleVerifier(_ context.Context, accessToken string) (GoogleIdentity, error) {
	email, ok := strings.CutPrefix(accessToken, "dev:")
	if !ok {
		return GoogleIdentity{}, ErrInvalidGoogleToken
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return GoogleIdentity{}, ErrInvalidGoogleToken
	}
	local, _, _ := strings.Cut(email, "@")
	return GoogleIdentity{Subject: "google-" + strings.ToLower(email), Email: email, FirstName: local}, nil
}

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "12345678": {}, "123456789": {}, "qwerty123": {},
	"iloveyou": {}, "11111111": {}, "abc12345": {}, "letmein1": {}, "admin123": {},
}

// UserService provides authentication-related operations:
// - Register: validate and create users
// - Login: verify credentials and mint tokens
// - GoogleLogin: resolve a federated identity to a user
// - Authenticate: map an access token back to its user
type UserService struct {
	store                        *storage.Memory
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	verifyGoogle                 GoogleVerifier
	bcryptCost                   int
}

// NewUserService constructs a UserService from server config.
func NewUserService(store *storage.Memory, cfg *config.Config, verify GoogleVerifier) *UserService {
	if verify == nil {
		verify = DevGoogleVerifier
	}
	return &UserService{
		store:                        store,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		verifyGoogle:                 verify,
		bcryptCost:                   bcrypt.DefaultCost,
	}
}

// Register validates req the way dj-rest-auth does and creates the user.
// Validation failures are returned as FieldErrors.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Username = norm.NFKC.String(strings.TrimSpace(req.Username))
	req.Email = strings.TrimSpace(req.Email)

	fe := FieldErrors{}
	if req.Username == "" {
		fe.add("username", msgRequired)
	} else if _, err := s.store.UserByUsername(ctx, req.Username); err == nil {
		fe.add("username", msgUsernameTaken)
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fe.add("email", msgEmailInvalid)
		} else if _, err := s.store.UserByEmail(ctx, req.Email); err == nil {
			fe.add("email", msgEmailTaken)
		}
	}
	for _, msg := range passwordProblems(req.Password1, req.Username) {
		fe.add("password1", msg)
	}
	if req.Password2 == "" {
		fe.add("password2", msgRequired)
	}
	if len(fe) == 0 && req.Password1 != req.Password2 {
		fe.add("non_field_errors", msgPasswordsDiffer)
	}
	if err := fe.orNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, models.User{Username: req.Username, Email: req.Email, PasswordHash: hash})
	switch {
	case errors.Is(err, storage.ErrUsernameTaken):
		return nil, FieldErrors{"username": {msgUsernameTaken}}
	case errors.Is(err, storage.ErrEmailTaken):
		return nil, FieldErrors{"email": {msgEmailTaken}}
	case err != nil:
		return nil, err
	}
	return s.issue(u)
}

func passwordProblems(pw, username string) []string {
	if pw == "" {
		return []string{msgRequired}
	}
	var out []string
	if username != "" && strings.Contains(strings.ToLower(pw), strings.ToLower(username)) {
		out = append(out, msgPasswordSimilar)
	}
	if len(pw) < 8 {
		out = append(out, msgPasswordShort)
	}
	if _, ok := commonPasswords[strings.ToLower(pw)]; ok {
		out = append(out, msgPasswordCommon)
	}
	if strings.Trim(pw, "0123456789") == "" {
		out = append(out, msgPasswordNumeric)
	}
	return out
}

// Login verifies username and password.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.PasswordHash == nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// GoogleLogin finds or creates the user behind a Google access token.
// An existing account with the same email is linked rather than duplicated.
func (s *UserService) GoogleLogin(ctx context.Context, accessToken string) (*AuthResult, error) {
	id, err := s.verifyGoogle(ctx, accessToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	if u, err := s.store.UserByGoogleSubject(ctx, id.Subject); err == nil {
		return s.issue(u)
	}
	if u, err := s.store.UserByEmail(ctx, id.Email); err == nil {
		if err := s.store.LinkGoogle(ctx, u.ID, id.Subject); err != nil {
			return nil, err
		}
		return s.issue(u)
	}

	u, err := s.store.CreateUser(ctx, models.User{
		Username:      s.freeUsername(ctx, id),
		Email:         id.Email,
		FirstName:     id.FirstName,
		LastName:      id.LastName,
		GoogleSubject: id.Subject,
	})
	if err != nil {
		return nil, fmt.Errorf("create google user: %w", err)
	}
	return s.issue(u)
}

func (s *UserService) freeUsername(ctx context.Context, id GoogleIdentity) string {
	base, _, _ := strings.Cut(id.Email, "@")
	if base == "" {
		base = "user"
	}
	name := base
	for i := 2; ; i++ {
		if _, err := s.store.UserByUsername(ctx, name); errors.Is(err, common.ErrorNotFound) {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}

// Authenticate returns the user an access token was issued for.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	id, err := auth.GetUserIDFromToken(accessToken, auth.TokenTypeAccess, s.jwtSecret)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return models.User{}, common.ErrInvalidToken
	}
	return u, nil
}

func (s *UserService) issue(u models.User) (*AuthResult, error) {
	access, err := auth.GenerateToken(u.ID, auth.TokenTypeAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := auth.GenerateToken(u.ID, auth.TokenTypeRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &AuthResult{TokenPair: TokenPair{AccessToken: access, RefreshToken: refresh}, User: u}, nil
}
