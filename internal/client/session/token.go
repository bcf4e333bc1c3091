package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/paydesk/internal/common"
)

// TokenExpiry reads the "exp" claim of a JWT access token without
// verifying its signature. The client has no key and does not need one:
// the value is only shown to the user. Opaque tokens yield
// common.ErrInvalidToken; tokens without an exp claim yield a zero time.
func TokenExpiry(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, common.ErrInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// Expired reports whether the session's token carries an exp claim that is
// already in the past. Anonymous sessions and opaque tokens are never
// "expired" here; the backend remains the judge via 401.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	exp, err := TokenExpiry(s.Token)
	if err != nil || exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}
