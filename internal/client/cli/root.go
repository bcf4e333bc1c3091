package cli

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

func (a *App) getStatus(ctx context.Context) string {
	s := a.auth.Current(ctx)
	if !s.Authenticated() {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", s.User.Username)
}

// Root runs the interactive shell until the user exits or input ends.
// A session ended by another paydesk process is announced; commands
// report their own logouts and 401s.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to paydesk (type 'help' for commands)")

	cancel := a.store.Subscribe(a.sessionChanged(ctx))
	defer cancel()

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// sessionChanged returns a listener that reacts only to actual
// authenticated/anonymous transitions; duplicate signals are ignored, and
// so are transitions made while a shell command is running.
func (a *App) sessionChanged(ctx context.Context) func(session.Session) {
	var loggedIn atomic.Bool
	loggedIn.Store(a.isLoggedIn(ctx))

	return func(s session.Session) {
		now := s.Authenticated()
		if loggedIn.Swap(now) == now {
			return
		}
		if now || a.running.Load() > 0 {
			return
		}
		a.println("Session ended")
	}
}
