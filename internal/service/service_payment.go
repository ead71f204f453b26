package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
)

type paymentService struct {
	logger *logger.Logger
}

func NewPaymentService(logger *logger.Logger) PaymentService {
	return &paymentService{logger: logger}
}

// NormalizePayment returns the exact, UTC-normalized form of req or a
// validation error listing every violation.
func (p *paymentService) NormalizePayment(ctx context.Context, req models.PaymentRequest) (models.Payment, error) {
	payment, err := validators.NormalizePayment(req)
	if err != nil {
		return models.Payment{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "paymentService.NormalizePayment").
		Str("currency", payment.Currency).
		Msg("payment normalized")
	return payment, nil
}
