package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/correlation"
)

// withCorrelationID adopts a valid inbound X-Correlation-ID or generates a
// new one, binds it to the request context and a child logger, and echoes
// it on the response before the next handler runs.
func (h *Handler) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inbound := r.Header.Get(correlation.Header)
		id, adopted := correlation.Resolve(inbound)

		ctx := correlation.WithID(r.Context(), id)
		ctx, log := h.logger.WithCorrelationID(ctx, id)

		if !adopted && inbound != "" {
			// the raw value is not logged
			log.Debug().Int("inbound_length", len(inbound)).Msg("invalid inbound correlation id replaced")
		}

		w.Header().Set(correlation.Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
