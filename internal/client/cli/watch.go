package cli

import (
	"context"

	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

// Watch prints every session change until ctx is done. Consecutive
// identical states are printed once.
func (a *App) Watch(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	cancel := a.store.Subscribe(func(session.Session) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	last := describe(a.store.Get(ctx))
	a.println("Current session:", last)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if d := describe(a.store.Get(ctx)); d != last {
				last = d
				a.println("Session changed:", d)
			}
		}
	}
}

func describe(s session.Session) string {
	if !s.Authenticated() {
		return "anonymous"
	}
	return "logged in as " + s.User.Username
}
