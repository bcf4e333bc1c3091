// Package api exposes the stub backend over HTTP with the routes and
// response shapes the paydesk client speaks.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/paydesk/internal/logging"
	"github.com/dmitrijs2005/paydesk/internal/server/services"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address  string
	store    *storage.Memory
	users    *services.UserService
	samples  *services.SampleService
	payments *services.PaymentService
	logger   logging.Logger
}

func NewHTTPServer(addr string, l logging.Logger, store *storage.Memory, us *services.UserService,
	ss *services.SampleService, ps *services.PaymentService) *HTTPServer {
	return &HTTPServer{
		address:  addr,
		store:    store,
		users:    us,
		samples:  ss,
		payments: ps,
		logger:   l.With("module", "http_server"),
	}
}

// Handler builds the router. Trailing slashes match the client's paths
// exactly.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/auth/login/", s.handleLogin)
	r.Post("/auth/registration/", s.handleRegister)
	r.Post("/auth/logout/", s.handleLogout)
	r.Post("/api/auth/google/", s.handleGoogleLogin)
	r.Get("/api/payments/products/", s.handleProducts)
	r.Get("/checkout/{transactionID}", s.handleCheckout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/api/all", s.handleListSamples)
		r.Post("/api/add", s.handleAddSample)
		r.Get("/api/account/", s.handleAccount)
		r.Post("/api/payments/create/", s.handleCreatePayment)
		r.Get("/api/payments/history/", s.handlePaymentHistory)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
