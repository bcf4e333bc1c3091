// Package models holds the stub backend's records. JSON tags match the
// wire format the paydesk client expects.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	AccountValue  decimal.Decimal `json:"account_value"`
	PasswordHash  []byte          `json:"-"`
	GoogleSubject string          `json:"-"`
}

type Sample struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Credits     int             `json:"credits"`
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Transaction struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"`
	UserID        int64           `json:"-"`
	ProductID     string          `json:"-"`
	Credits       int             `json:"-"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}
