package services

import (
	"errors"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
)

var (
	ErrMalformedAuthResponse = errors.New("backend returned no token or user")
	ErrInvalidCheckoutURL    = errors.New("checkout url must be an absolute http(s) url")
	ErrEmptyProductID        = errors.New("product id is required")
	ErrInvalidSample         = errors.New("sample needs a name and a non-negative age")
)

// ValidationError is a rejected registration. Exactly one of Message and
// Fields is set.
type ValidationError struct {
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return client.FormatFields(e.Fields)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// newValidationError turns a backend rejection into a ValidationError.
// Unauthorized and network failures are returned unchanged.
func newValidationError(err error) error {
	apiErr, ok := client.AsAPIError(err)
	if !ok || apiErr.Kind != client.KindBackend {
		return err
	}
	if len(apiErr.Fields) > 0 && apiErr.Message == "" {
		return &ValidationError{Fields: apiErr.Fields, Err: err}
	}
	msg := apiErr.Message
	if msg == "" {
		msg = "registration failed: " + apiErr.Error()
	}
	return &ValidationError{Message: msg, Err: err}
}
