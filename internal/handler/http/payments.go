package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
)

// normalizePayment validates a payment and echoes it in canonical form.
// Nothing is stored.
func (h *Handler) normalizePayment(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSONBody[models.PaymentRequest](w, r, isPaymentField)
	if err != nil {
		return err
	}

	payment, err := h.services.PaymentService.NormalizePayment(r.Context(), req)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, payment, http.StatusOK)
	return err
}

func isPaymentField(field string) bool {
	switch field {
	case validators.FieldAmount, validators.FieldCurrency, validators.FieldDescription, validators.FieldOccurredAt:
		return true
	}
	return false
}
