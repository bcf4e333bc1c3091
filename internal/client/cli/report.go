package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/services"
)

const msgSessionExpired = "Session expired. Please login again"

// report prints err the way a user should see it. fallback is shown for
// backend failures that carry no message of their own.
func (a *App) report(err error, fallback string) {
	var vErr *services.ValidationError

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.println(msgSessionExpired)
	case errors.As(err, &vErr):
		a.println(vErr.Error())
	case errors.Is(err, client.ErrUnavailable):
		a.println("Server unavailable, try again later")
	default:
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
			a.println(fmt.Sprintf("%s: %s", fallback, apiErr.Message))
			break
		}
		a.println(fallback)
	}
	a.logger.Debug(context.Background(), "command failed", "error", err)
}
