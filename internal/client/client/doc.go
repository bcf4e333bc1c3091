// Package client talks to the paydesk backend over HTTP/JSON.
//
// # Overview
//
//  1. Client is the typed contract: one method per backend route.
//  2. APIClient implements it. All calls go through APIClient.Do, which
//     reads the session store at dispatch time, sets
//     "Authorization: Bearer <token>" when a token is present (never on
//     /auth/login/ or /auth/registration/), and tags the request with an
//     X-Request-ID.
//
// # Error Handling
//
// Failures are *APIError values whose Kind is one of KindUnauthorized,
// KindNetwork or KindBackend; errors.Is matches them against
// ErrUnauthorized, ErrUnavailable and ErrBackend respectively.
//
// A 401 response clears the session store first and is then returned as
// KindUnauthorized. It is never swallowed and never retried. Concurrent
// 401s each clear the store, which is harmless because Clear is idempotent.
package client
