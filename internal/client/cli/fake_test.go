package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/services"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

// ---- input stubs ----

func stubInputs(t *testing.T, lines []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	queue := append([]string(nil), lines...)
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(queue) == 0 {
			return "", io.EOF
		}
		s := queue[0]
		queue = queue[1:]
		return s, nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func silencePrintln(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		buf.WriteString(fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

// ---- fake services ----

type fakeAuth struct {
	store session.Store

	loginErr   error
	lastLogin  models.LoginCredentials
	regErr     error
	lastReg    models.RegisterCredentials
	googleErr  error
	lastGoogle string
	logoutErr  error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) login(ctx context.Context, username string) (*models.Profile, error) {
	p := &models.Profile{ID: 1, Username: username}
	if err := f.store.Set(ctx, session.Session{Token: "T-" + username, User: p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *fakeAuth) Login(ctx context.Context, c models.LoginCredentials) (*models.Profile, error) {
	f.lastLogin = c
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.login(ctx, c.Username)
}

func (f *fakeAuth) Register(ctx context.Context, c models.RegisterCredentials) (*models.Profile, error) {
	f.lastReg = c
	if f.regErr != nil {
		return nil, f.regErr
	}
	return f.login(ctx, c.Username)
}

func (f *fakeAuth) GoogleLogin(ctx context.Context, token string) (*models.Profile, error) {
	f.lastGoogle = token
	if f.googleErr != nil {
		return nil, f.googleErr
	}
	return f.login(ctx, "google")
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	return f.store.Clear(ctx)
}

func (f *fakeAuth) State(ctx context.Context) services.State {
	if f.store.Get(ctx).Authenticated() {
		return services.Authenticated
	}
	return services.Anonymous
}

func (f *fakeAuth) Current(ctx context.Context) session.Session { return f.store.Get(ctx) }

type fakeSamples struct {
	rows    []models.Sample
	listErr error
	added   []models.NewSample
	addErr  error

	// beforeList runs on every List, e.g. to clear the session the way
	// the API client does on a 401.
	beforeList func(ctx context.Context)
}

func (f *fakeSamples) List(ctx context.Context) ([]models.Sample, error) {
	if f.beforeList != nil {
		f.beforeList(ctx)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeSamples) Add(_ context.Context, s models.NewSample) (*models.Sample, error) {
	f.added = append(f.added, s)
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.Sample{ID: int64(len(f.added)), Name: s.Name, Age: s.Age}, nil
}

type fakePayments struct {
	products    []models.Product
	productsErr error
	history     []models.PaymentTransaction
	historyErr  error
	account     *models.Account
	accountErr  error

	checkoutURL string
	checkoutErr error
	bought      []string
}

func (f *fakePayments) Products(context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

func (f *fakePayments) History(context.Context) ([]models.PaymentTransaction, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakePayments) Account(context.Context) (*models.Account, error) {
	return f.account, f.accountErr
}

func (f *fakePayments) Checkout(_ context.Context, id string) (string, error) {
	f.bought = append(f.bought, id)
	return f.checkoutURL, f.checkoutErr
}

// ---- app builder ----

type testApp struct {
	*App
	out      *bytes.Buffer
	store    *session.MemoryStore
	auth     *fakeAuth
	samples  *fakeSamples
	payments *fakePayments
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	st := session.NewMemoryStore()
	ta := &testApp{
		out:      &bytes.Buffer{},
		store:    st,
		auth:     &fakeAuth{store: st},
		samples:  &fakeSamples{},
		payments: &fakePayments{},
	}
	ta.App = newApp(Deps{
		Store:    st,
		Auth:     ta.auth,
		Samples:  ta.samples,
		Payments: ta.payments,
		In:       strings.NewReader(""),
		Out:      ta.out,
	})
	return ta
}

func (ta *testApp) loginAs(t *testing.T, username string) {
	t.Helper()
	if _, err := ta.auth.login(context.Background(), username); err != nil {
		t.Fatal(err)
	}
}
