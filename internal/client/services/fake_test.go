package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

// ---- fake client ----

// fakeClient implements client.Client for service tests. A non-nil *Err
// field makes the matching call fail; Unauthorized mimics the real client
// by clearing Store before returning.
type fakeClient struct {
	mu sync.Mutex

	Store session.Store

	AuthRet *models.AuthResponse
	AuthErr error

	LogoutErr   error
	LogoutCalls int

	SamplesRet []models.Sample
	SamplesErr error
	AddRet     *models.Sample
	AddErr     error
	LastAdd    models.NewSample

	AccountRet  *models.Account
	AccountErr  error
	ProductsRet []models.Product
	ProductsErr error
	HistoryRet  []models.PaymentTransaction
	HistoryErr  error

	CheckoutRet   *models.CheckoutSession
	CheckoutErr   error
	LastProductID string

	LastLogin    models.LoginCredentials
	LastRegister models.RegisterCredentials
	LastGoogle   string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) fail(err error) error {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Kind == client.KindUnauthorized && f.Store != nil {
		_ = f.Store.Clear(context.Background())
	}
	return err
}

func (f *fakeClient) Login(_ context.Context, c models.LoginCredentials) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLogin = c
	if f.AuthErr != nil {
		return nil, f.fail(f.AuthErr)
	}
	return f.AuthRet, nil
}

func (f *fakeClient) Register(_ context.Context, c models.RegisterCredentials) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegister = c
	if f.AuthErr != nil {
		return nil, f.fail(f.AuthErr)
	}
	return f.AuthRet, nil
}

func (f *fakeClient) GoogleLogin(_ context.Context, token string) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastGoogle = token
	if f.AuthErr != nil {
		return nil, f.fail(f.AuthErr)
	}
	return f.AuthRet, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	if f.LogoutErr != nil {
		return f.fail(f.LogoutErr)
	}
	return nil
}

func (f *fakeClient) ListSamples(context.Context) ([]models.Sample, error) {
	if f.SamplesErr != nil {
		return nil, f.fail(f.SamplesErr)
	}
	return f.SamplesRet, nil
}

func (f *fakeClient) AddSample(_ context.Context, s models.NewSample) (*models.Sample, error) {
	f.LastAdd = s
	if f.AddErr != nil {
		return nil, f.fail(f.AddErr)
	}
	return f.AddRet, nil
}

func (f *fakeClient) Account(context.Context) (*models.Account, error) {
	if f.AccountErr != nil {
		return nil, f.fail(f.AccountErr)
	}
	return f.AccountRet, nil
}

func (f *fakeClient) Products(context.Context) ([]models.Product, error) {
	if f.ProductsErr != nil {
		return nil, f.fail(f.ProductsErr)
	}
	return f.ProductsRet, nil
}

func (f *fakeClient) CreatePayment(_ context.Context, productID string) (*models.CheckoutSession, error) {
	f.LastProductID = productID
	if f.CheckoutErr != nil {
		return nil, f.fail(f.CheckoutErr)
	}
	return f.CheckoutRet, nil
}

func (f *fakeClient) PaymentHistory(context.Context) ([]models.PaymentTransaction, error) {
	if f.HistoryErr != nil {
		return nil, f.fail(f.HistoryErr)
	}
	return f.HistoryRet, nil
}

// ---- error builders ----

func unauthorized() error {
	return &client.APIError{Kind: client.KindUnauthorized, Status: http.StatusUnauthorized}
}

func backend(status int, msg string, fields map[string][]string) error {
	return &client.APIError{Kind: client.KindBackend, Status: status, Message: msg, Fields: fields}
}

func network() error {
	return &client.APIError{Kind: client.KindNetwork, Err: context.DeadlineExceeded}
}

// ---- fake opener ----

type fakeOpener struct {
	URLs []string
	Err  error
}

func (o *fakeOpener) Open(_ context.Context, url string) error {
	o.URLs = append(o.URLs, url)
	return o.Err
}
