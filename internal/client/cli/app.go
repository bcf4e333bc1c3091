package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/paydesk/internal/client/browser"
	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/config"
	"github.com/dmitrijs2005/paydesk/internal/client/services"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
	"github.com/dmitrijs2005/paydesk/internal/logging"
)

// App is the paydesk terminal front-end. It owns the session store and
// the services built on top of it.
type App struct {
	config *config.Config
	logger logging.Logger

	store    session.Store
	auth     services.AuthService
	samples  services.SampleService
	payments services.PaymentService

	reader *bufio.Reader
	out    io.Writer

	// running counts commands in flight in the shell.
	running atomic.Int32

	closeFn func() error
}

// Deps are the collaborators of an App. NewApp fills them from config;
// tests pass their own.
type Deps struct {
	Store    session.Store
	Auth     services.AuthService
	Samples  services.SampleService
	Payments services.PaymentService
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer
}

// NewApp opens the session database, builds the API client and services,
// and returns a ready App. Close must be called when done.
func NewApp(ctx context.Context, cfg *config.Config, noBrowser bool) (*App, error) {
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	store, err := session.Open(ctx, cfg.SessionDB, session.Options{
		Logger:   logger,
		Watch:    true,
		Debounce: cfg.WatchDebounce,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing session storage: %w", err)
	}

	api := client.NewAPIClient(cfg.BaseURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)

	var opener browser.Opener = browser.NewSystemOpener()
	if noBrowser {
		opener = browser.PrintOpener{Print: func(string) {
			fmt.Fprintln(os.Stdout, "Open the checkout link in a browser to pay")
		}}
	}

	a := newApp(Deps{
		Store:    store,
		Auth:     services.NewAuthService(api, store, logger),
		Samples:  services.NewSampleService(api),
		Payments: services.NewPaymentService(api, opener, logger),
		Logger:   logger,
		In:       os.Stdin,
		Out:      os.Stdout,
	})
	a.config = cfg
	a.closeFn = store.Close
	return a, nil
}

func newApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	a := &App{
		logger:   d.Logger,
		store:    d.Store,
		auth:     d.Auth,
		samples:  d.Samples,
		payments: d.Payments,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
	return a
}

// Close releases the session database.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.State(ctx) == services.Authenticated
}

func (a *App) begin() func() {
	a.running.Add(1)
	var once sync.Once
	return func() { once.Do(func() { a.running.Add(-1) }) }
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
