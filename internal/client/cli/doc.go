// Package cli is the paydesk terminal front-end.
//
// App wires the session store, the API client and the services, and
// exposes one method per user command (Login, ListSamples, Buy, ...).
// The same methods back both the cobra commands in cmd/paydesk and the
// interactive shell started by App.Root.
//
// Every command reports its own errors. An Unauthorized failure prints
// "Session expired. Please login again" and drops the rows any listing
// had loaded; the shell then offers the anonymous command set again.
package cli
