package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

// Title returns the status with its first letter upper-cased, the way the
// history table prints it.
func (s PaymentStatus) Title() string {
	return cases.Title(language.Und).String(string(s))
}

// PaymentTransaction is read-only and owned by the backend. Amount may
// arrive as a JSON number or a quoted decimal string.
type PaymentTransaction struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        PaymentStatus   `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	Credits     int             `json:"credits,omitempty"`
}

type CreatePaymentRequest struct {
	ProductID string `json:"product_id"`
}

type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
}

// Account is the /api/account/ payload. Fields other than account_value are
// kept verbatim in Extra.
type Account struct {
	AccountValue decimal.Decimal
	Extra        map[string]json.RawMessage
}

func (a *Account) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["account_value"]; ok {
		if err := a.AccountValue.UnmarshalJSON(v); err != nil {
			return err
		}
		delete(raw, "account_value")
	}
	a.Extra = raw
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+1)
	for k, v := range a.Extra {
		out[k] = v
	}
	out["account_value"] = a.AccountValue
	return json.Marshal(out)
}
