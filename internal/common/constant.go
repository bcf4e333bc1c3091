// Package common contains shared constants and sentinel errors used across
// paydesk components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer"
	// RequestIDHeaderName tags each outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)

// Durable session keys. The absence of either key means anonymous.
const (
	TokenKey = "token"
	UserKey  = "user"
)
