package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/paydesk/internal/client/browser"
	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/logging"
)

// PaymentService covers the catalog, history, balance and checkout handoff.
// Checkout writes no local state: once the browser is pointed at the
// provider, control leaves the application.
type PaymentService interface {
	Products(ctx context.Context) ([]models.Product, error)
	History(ctx context.Context) ([]models.PaymentTransaction, error)
	Account(ctx context.Context) (*models.Account, error)
	Checkout(ctx context.Context, productID string) (string, error)
}

type paymentService struct {
	client client.Client
	opener browser.Opener
	logger logging.Logger
}

func NewPaymentService(c client.Client, opener browser.Opener, logger logging.Logger) PaymentService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &paymentService{client: c, opener: opener, logger: logger.With("component", "payments")}
}

func (p *paymentService) Products(ctx context.Context) ([]models.Product, error) {
	items, err := p.client.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (p *paymentService) History(ctx context.Context) ([]models.PaymentTransaction, error) {
	items, err := p.client.PaymentHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return items, nil
}

func (p *paymentService) Account(ctx context.Context) (*models.Account, error) {
	acc, err := p.client.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	return acc, nil
}

// Checkout asks the backend for a checkout session and opens its URL. The
// URL is returned so callers can print it when no browser is available.
func (p *paymentService) Checkout(ctx context.Context, productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", ErrEmptyProductID
	}

	cs, err := p.client.CreatePayment(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}

	target, err := checkoutURL(cs.CheckoutURL)
	if err != nil {
		return "", err
	}

	p.logger.Info(ctx, "redirecting to checkout", "product_id", productID)
	if err := p.opener.Open(ctx, target); err != nil {
		return target, fmt.Errorf("open checkout page: %w", err)
	}
	return target, nil
}

func checkoutURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidCheckoutURL, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrInvalidCheckoutURL, raw)
	}
	return u.String(), nil
}
