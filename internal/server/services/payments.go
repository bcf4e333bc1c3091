package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/paydesk/internal/server/models"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

// DefaultProducts is the catalog served when none is configured.
var DefaultProducts = []models.Product{
	{ID: "credits-100", Name: "100 credits", Description: "Starter pack", Price: decimal.RequireFromString("4.99"), Currency: "USD", Credits: 100},
	{ID: "credits-500", Name: "500 credits", Description: "Best value", Price: decimal.RequireFromString("19.99"), Currency: "USD", Credits: 500},
	{ID: "credits-1000", Name: "1000 credits", Description: "For heavy users", Price: decimal.RequireFromString("34.99"), Currency: "USD", Credits: 1000},
}

// PaymentService runs a fake checkout: Checkout records a pending
// transaction and hands out a link; visiting the link completes it.
type PaymentService struct {
	store        *storage.Memory
	products     []models.Product
	checkoutBase string
}

func NewPaymentService(store *storage.Memory, checkoutBase string, products []models.Product) *PaymentService {
	if products == nil {
		products = DefaultProducts
	}
	if !strings.HasSuffix(checkoutBase, "/") {
		checkoutBase += "/"
	}
	return &PaymentService{store: store, products: products, checkoutBase: checkoutBase}
}

func (s *PaymentService) Products(context.Context) []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *PaymentService) product(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Checkout creates a pending transaction for productID and returns the
// link that completes it.
func (s *PaymentService) Checkout(ctx context.Context, userID int64, productID string) (string, error) {
	p, ok := s.product(strings.TrimSpace(productID))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrProductNotFound, productID)
	}
	tx := s.store.AddTransaction(ctx, models.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		ProductID:     p.ID,
		Credits:       p.Credits,
		Amount:        p.Price,
		Currency:      p.Currency,
		Status:        models.StatusPending,
		PaymentMethod: "card",
	})
	return s.checkoutBase + tx.TransactionID, nil
}

// Complete settles a pending transaction and credits its user.
func (s *PaymentService) Complete(ctx context.Context, transactionID string) (models.Transaction, error) {
	return s.store.CompleteTransaction(ctx, transactionID)
}

func (s *PaymentService) History(ctx context.Context, userID int64) []models.Transaction {
	return s.store.Transactions(ctx, userID)
}
