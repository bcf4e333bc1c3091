package client

import (
	"context"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
)

// Client is the typed backend contract consumed by the services. Every
// method maps to exactly one HTTP exchange.
type Client interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	Register(ctx context.Context, creds models.RegisterCredentials) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, accessToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error

	ListSamples(ctx context.Context) ([]models.Sample, error)
	AddSample(ctx context.Context, s models.NewSample) (*models.Sample, error)

	Account(ctx context.Context) (*models.Account, error)
	Products(ctx context.Context) ([]models.Product, error)
	CreatePayment(ctx context.Context, productID string) (*models.CheckoutSession, error)
	PaymentHistory(ctx context.Context) ([]models.PaymentTransaction, error)
}

// Backend routes.
const (
	PathLogin          = "/auth/login/"
	PathRegistration   = "/auth/registration/"
	PathGoogleLogin    = "/api/auth/google/"
	PathLogout         = "/auth/logout/"
	PathSamples        = "/api/all"
	PathAddSample      = "/api/add"
	PathAccount        = "/api/account/"
	PathProducts       = "/api/payments/products/"
	PathCreatePayment  = "/api/payments/create/"
	PathPaymentHistory = "/api/payments/history/"
)

// publicPaths never carry the bearer credential.
var publicPaths = map[string]struct{}{
	PathLogin:        {},
	PathRegistration: {},
}
