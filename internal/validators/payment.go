package validators

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Payment field names reported in validation problems.
const (
	FieldAmount     = "amount"
	FieldCurrency   = "currency"
	FieldOccurredAt = "occurred_at"
)

// MaxAmountPlaces is the number of decimal places a payment amount may
// carry.
const MaxAmountPlaces = 2

var maxAmount = decimal.RequireFromString("999999999.99")

// occurredAtLayouts are tried in order. Timestamps without a zone are
// taken as UTC.
var occurredAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// NormalizePayment validates req and returns the normalized payment. All
// violations are reported together in field order: amount, currency,
// description, occurred_at.
func NormalizePayment(req models.PaymentRequest) (models.Payment, error) {
	var (
		payment    models.Payment
		violations []apperrors.FieldError
		err        error
	)

	if payment.Amount, err = ParseAmount(string(req.Amount)); err != nil {
		violations = append(violations, apperrors.FieldError{Field: FieldAmount, Message: err.Error()})
	}
	if payment.Currency, err = CanonicalizeCurrency(req.Currency); err != nil {
		violations = append(violations, apperrors.FieldError{Field: FieldCurrency, Message: err.Error()})
	}
	if payment.Description, err = CanonicalizeDescription(req.Description); err != nil {
		violations = append(violations, apperrors.FieldError{Field: FieldDescription, Message: err.Error()})
	}
	if payment.OccurredAt, err = ParseOccurredAt(req.OccurredAt); err != nil {
		violations = append(violations, apperrors.FieldError{Field: FieldOccurredAt, Message: err.Error()})
	}

	if len(violations) > 0 {
		return models.Payment{}, apperrors.Validation(violations...)
	}
	return payment, nil
}

// ParseAmount parses raw as an exact decimal. The amount must be positive,
// at most 999999999.99 and carry no more than two significant decimal
// places.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrAmountRequired
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}

	switch {
	case amount.Sign() <= 0:
		return decimal.Zero, ErrAmountNotPositive
	case amount.GreaterThan(maxAmount):
		return decimal.Zero, ErrAmountTooLarge
	case !amount.Equal(amount.Truncate(MaxAmountPlaces)):
		return decimal.Zero, ErrAmountPrecision
	}
	return amount.Truncate(MaxAmountPlaces), nil
}

// CanonicalizeCurrency upper-cases code and checks it against the ISO 4217
// table.
func CanonicalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return code, ErrCurrencyInvalid
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return code, ErrCurrencyInvalid
		}
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return code, ErrCurrencyInvalid
	}
	return unit.String(), nil
}

// ParseOccurredAt parses an ISO 8601 timestamp and converts it to UTC.
func ParseOccurredAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrOccurredAtRequired
	}

	for _, layout := range occurredAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrOccurredAtInvalid
}
