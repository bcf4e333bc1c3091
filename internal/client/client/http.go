package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
	"github.com/dmitrijs2005/paydesk/internal/common"
	"github.com/dmitrijs2005/paydesk/internal/logging"
)

// APIClient dispatches every backend call through one path that attaches
// the current bearer token and reacts to 401 by clearing the session.
type APIClient struct {
	baseURL      string
	http         *http.Client
	store        session.Store
	logger       logging.Logger
	newRequestID func() string
}

var _ Client = (*APIClient)(nil)

type Option func(*APIClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.http = hc }
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *APIClient) { c.logger = l }
}

// NewAPIClient builds a client for the backend at baseURL. The store is read
// on every request; the client keeps no copy of the token.
func NewAPIClient(baseURL string, store session.Store, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		store:        store,
		logger:       logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")
	return c
}

// Do sends one request. body (if non-nil) is sent as JSON; a 2xx payload
// is decoded into out (if non-nil). Failures are *APIError.
//
// The Authorization header is derived from the store right here, at
// dispatch time. A 401 clears the store before the error is returned.
func (c *APIClient) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if _, public := publicPaths[path]; !public {
		if token := c.store.Get(ctx).Token; token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		}
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &APIError{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "read response failed", "status", resp.StatusCode, "error", err)
		return &APIError{Kind: KindNetwork, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.store.Clear(ctx); err != nil {
			log.Error(ctx, "clear session after 401", "error", err)
		}
		msg, fields := decodeErrorBody(payload)
		log.Info(ctx, "session rejected by backend, cleared")
		return &APIError{Kind: KindUnauthorized, Method: method, Path: path, Status: resp.StatusCode,
			Body: payload, Message: msg, Fields: fields}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, fields := decodeErrorBody(payload)
		log.Warn(ctx, "backend error", "status", resp.StatusCode)
		return &APIError{Kind: KindBackend, Method: method, Path: path, Status: resp.StatusCode,
			Body: payload, Message: msg, Fields: fields}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *APIClient) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, PathLogin, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Register(ctx context.Context, creds models.RegisterCredentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, PathRegistration, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GoogleLogin(ctx context.Context, accessToken string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, PathGoogleLogin, models.GoogleLoginRequest{Token: accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, PathLogout, nil, nil)
}

func (c *APIClient) ListSamples(ctx context.Context) ([]models.Sample, error) {
	var out []models.Sample
	if err := c.Do(ctx, http.MethodGet, PathSamples, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSample returns the created record. Backends that answer with just
// {id, message} get name and age filled in from the request.
func (c *APIClient) AddSample(ctx context.Context, s models.NewSample) (*models.Sample, error) {
	var out struct {
		models.Sample
		Message string `json:"message"`
	}
	if err := c.Do(ctx, http.MethodPost, PathAddSample, s, &out); err != nil {
		return nil, err
	}
	created := out.Sample
	if created.Name == "" {
		created.Name = s.Name
		created.Age = s.Age
	}
	return &created, nil
}

func (c *APIClient) Account(ctx context.Context) (*models.Account, error) {
	var out models.Account
	if err := c.Do(ctx, http.MethodGet, PathAccount, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.Do(ctx, http.MethodGet, PathProducts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreatePayment(ctx context.Context, productID string) (*models.CheckoutSession, error) {
	var out models.CheckoutSession
	if err := c.Do(ctx, http.MethodPost, PathCreatePayment, models.CreatePaymentRequest{ProductID: productID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) PaymentHistory(ctx context.Context) ([]models.PaymentTransaction, error) {
	var out []models.PaymentTransaction
	if err := c.Do(ctx, http.MethodGet, PathPaymentHistory, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
