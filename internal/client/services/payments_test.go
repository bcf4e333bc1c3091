package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
	"github.com/dmitrijs2005/paydesk/internal/client/session"
)

func TestCheckout_OpensReturnedURL(t *testing.T) {
	st := session.NewMemoryStore()
	require.NoError(t, st.Set(context.Background(), session.Session{Token: "T1", User: &models.Profile{ID: 1}}))
	fc := &fakeClient{Store: st, CheckoutRet: &models.CheckoutSession{CheckoutURL: "https://checkout.stripe.com/c/pay/cs_1"}}
	op := &fakeOpener{}
	svc := NewPaymentService(fc, op, nil)

	got, err := svc.Checkout(context.Background(), " prod_1 ")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", got)
	assert.Equal(t, "prod_1", fc.LastProductID)
	assert.Equal(t, []string{"https://checkout.stripe.com/c/pay/cs_1"}, op.URLs)

	// checkout writes no local state
	assert.Equal(t, "T1", st.Get(context.Background()).Token)
}

func TestCheckout_Failures(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		ret       *models.CheckoutSession
		err       error
		want      error
	}{
		{name: "empty product", productID: "  ", want: ErrEmptyProductID},
		{name: "backend error", productID: "p", err: backend(http.StatusNotFound, "Product not found", nil), want: client.ErrBackend},
		{name: "relative url", productID: "p", ret: &models.CheckoutSession{CheckoutURL: "/pay/1"}, want: ErrInvalidCheckoutURL},
		{name: "empty url", productID: "p", ret: &models.CheckoutSession{}, want: ErrInvalidCheckoutURL},
		{name: "bad scheme", productID: "p", ret: &models.CheckoutSession{CheckoutURL: "javascript:alert(1)"}, want: ErrInvalidCheckoutURL},
		{name: "unauthorized", productID: "p", err: unauthorized(), want: client.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &fakeOpener{}
			svc := NewPaymentService(&fakeClient{CheckoutRet: tt.ret, CheckoutErr: tt.err}, op, nil)

			_, err := svc.Checkout(context.Background(), tt.productID)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, op.URLs)
		})
	}
}

func TestCheckout_OpenerFailureStillReturnsURL(t *testing.T) {
	boom := errors.New("no display")
	op := &fakeOpener{Err: boom}
	svc := NewPaymentService(&fakeClient{CheckoutRet: &models.CheckoutSession{CheckoutURL: "http://localhost:8000/pay/1"}}, op, nil)

	got, err := svc.Checkout(context.Background(), "p")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "http://localhost:8000/pay/1", got)
}

func TestPaymentService_Reads(t *testing.T) {
	fc := &fakeClient{
		ProductsRet: []models.Product{{ID: "p1", Name: "100 credits", Price: decimal.RequireFromString("9.99")}},
		HistoryRet:  []models.PaymentTransaction{{ID: 1, Status: models.PaymentCompleted}},
		AccountRet:  &models.Account{AccountValue: decimal.NewFromInt(100)},
	}
	svc := NewPaymentService(fc, &fakeOpener{}, nil)
	ctx := context.Background()

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, history[0].Status)

	acc, err := svc.Account(ctx)
	require.NoError(t, err)
	assert.True(t, acc.AccountValue.Equal(decimal.NewFromInt(100)))
}

func TestPaymentService_UnauthorizedClearsSession(t *testing.T) {
	st := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, session.Session{Token: "T1", User: &models.Profile{ID: 1}}))
	svc := NewPaymentService(&fakeClient{Store: st, HistoryErr: unauthorized()}, &fakeOpener{}, nil)

	_, err := svc.History(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, st.Get(ctx).Authenticated())
}
