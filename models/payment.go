package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is the client payload of a payment. Amount keeps the
// literal digits sent by the client, quoted or not, so no binary float is
// involved before validation.
type PaymentRequest struct {
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Description *string     `json:"description,omitempty"`
	OccurredAt  string      `json:"occurred_at"`
}

// Payment is a validated payment: the amount is exact with at most two
// decimal places, the currency is an upper-case ISO 4217 code and the
// timestamp is in UTC.
type Payment struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
