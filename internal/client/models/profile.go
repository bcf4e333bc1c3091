// Package models holds the wire types exchanged with the backend.
package models

import "github.com/shopspring/decimal"

// Profile is the user snapshot returned on login/registration. It is
// replaced wholesale, never patched.
type Profile struct {
	ID           int64            `json:"id"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	AccountValue *decimal.Decimal `json:"account_value,omitempty"`
}

// DisplayName prefers "First Last" and falls back to the username.
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.Username
	}
}

type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterCredentials struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password1"`
	PasswordConfirmation string `json:"password2"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// AuthResponse is the body of every successful login-like call.
type AuthResponse struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	User    *Profile `json:"user"`
}
