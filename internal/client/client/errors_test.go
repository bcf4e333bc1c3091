package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		msg    string
		fields map[string][]string
	}{
		{name: "empty", body: ""},
		{name: "json string", body: `"boom"`, msg: "boom"},
		{name: "detail", body: `{"detail":"Invalid token"}`, msg: "Invalid token"},
		{name: "error", body: `{"error":"Product not found"}`, msg: "Product not found"},
		{name: "plain text", body: "Bad Gateway", msg: "Bad Gateway"},
		{name: "html", body: "<html>oops</html>"},
		{
			name:   "field lists",
			body:   `{"email":["Enter a valid email address."],"non_field_errors":"Passwords do not match"}`,
			fields: map[string][]string{"email": {"Enter a valid email address."}, "non_field_errors": {"Passwords do not match"}},
		},
		{
			name:   "detail with siblings is a field map",
			body:   `{"detail":"x","code":"token_not_valid"}`,
			fields: map[string][]string{"detail": {"x"}, "code": {"token_not_valid"}},
		},
		{
			name:   "non string value kept raw",
			body:   `{"age":{"min":1}}`,
			fields: map[string][]string{"age": {`{"min":1}`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, fields := decodeErrorBody([]byte(tt.body))
			assert.Equal(t, tt.msg, msg)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestFormatFields(t *testing.T) {
	got := FormatFields(map[string][]string{
		"username":  {"taken"},
		"password1": {"too short", "too common"},
	})
	assert.Equal(t, "password1: too short, too common\nusername: taken", got)
}

func TestAPIError_IsAndMessage(t *testing.T) {
	netErr := errors.New("connection refused")
	tests := []struct {
		err      *APIError
		sentinel error
		text     string
	}{
		{&APIError{Kind: KindUnauthorized, Method: "GET", Path: "/api/all", Status: 401}, ErrUnauthorized, "GET /api/all: 401 Unauthorized"},
		{&APIError{Kind: KindNetwork, Method: "GET", Path: "/api/all", Err: netErr}, ErrUnavailable, "GET /api/all: connection refused"},
		{&APIError{Kind: KindBackend, Method: "POST", Path: "/api/add", Status: 400, Message: "bad"}, ErrBackend, "POST /api/add: 400 bad"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.text, tt.err.Error())

			got, ok := AsAPIError(wrapped)
			assert.True(t, ok)
			assert.Same(t, tt.err, got)
		})
	}

	assert.ErrorIs(t, &APIError{Kind: KindNetwork, Err: netErr}, netErr)
	assert.NotErrorIs(t, &APIError{Kind: KindBackend}, ErrUnauthorized)
}
