package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_NormalizePayment(t *testing.T) {
	svc := NewPaymentService(logger.Nop())

	payment, err := svc.NormalizePayment(context.Background(), models.PaymentRequest{
		Amount:     "19.99",
		Currency:   "chf",
		OccurredAt: "2026-07-01T08:00:00-04:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "19.99", payment.Amount.StringFixed(2))
	assert.Equal(t, "CHF", payment.Currency)
	assert.Equal(t, time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC), payment.OccurredAt)
}

func TestPaymentService_NormalizePayment_Invalid(t *testing.T) {
	svc := NewPaymentService(logger.Nop())

	_, err := svc.NormalizePayment(context.Background(), models.PaymentRequest{
		Amount:     "1.005",
		Currency:   "USD",
		OccurredAt: "2026-07-01T08:00:00Z",
	})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, validators.FieldAmount, appErr.Fields[0].Field)
}
