package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "task-tracker"

func (h *Handler) health(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, models.HealthResponse{
		Status:        "ok",
		Service:       ServiceName,
		CorrelationID: correlation.IDFromContext(r.Context()),
	}, http.StatusOK)
	return err
}
