// Package server wires the paydesk stub backend: in-memory storage, the
// services on top of it and the HTTP API, with signal-driven shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/paydesk/internal/logging"
	"github.com/dmitrijs2005/paydesk/internal/server/api"
	"github.com/dmitrijs2005/paydesk/internal/server/config"
	"github.com/dmitrijs2005/paydesk/internal/server/services"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *api.HTTPServer
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store := storage.NewMemory()
	us := services.NewUserService(store, c, nil)
	ss := services.NewSampleService(store)
	ps := services.NewPaymentService(store, c.CheckoutBaseURL, nil)

	srv := api.NewHTTPServer(c.EndpointAddr, logger, store, us, ss, ps)

	return &App{config: c, logger: logger, http: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
