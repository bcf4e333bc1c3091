// Package services contains the stub backend's business rules: account
// creation and login, samples, and the fake payment flow.
package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrProductNotFound    = errors.New("product not found")
)

// FieldErrors maps request fields to validation messages, as
// django-rest-framework reports them. "non_field_errors" holds the rest.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}
	return strings.Join(parts, "; ")
}

// orNil returns f as an error, or nil when it is empty.
func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

const (
	msgRequired        = "This field is required."
	msgUsernameTaken   = "A user with that username already exists."
	msgEmailTaken      = "A user is already registered with this e-mail address."
	msgEmailInvalid    = "Enter a valid email address."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordCommon  = "This password is too common."
	msgPasswordNumeric = "This password is entirely numeric."
	msgPasswordSimilar = "The password is too similar to the username."
	msgPasswordsDiffer = "The two password fields didn't match."
)
