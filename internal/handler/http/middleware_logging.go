package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// StatusClientClosedRequest is logged when the client went away before the
// response was complete.
const StatusClientClosedRequest = 499

// Request outcomes reported on the terminal access log line.
const (
	outcomeCompleted    = "completed"
	outcomeClientClosed = "client_closed"
	outcomeTimeout      = "timeout"
)

// withLogging writes a start line and exactly one terminal line per request.
// It must run inside withCorrelationID so that both lines carry the same
// correlation_id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Msg("request started")

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		status, outcome := requestOutcome(r.Context(), lw.status)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Str("outcome", outcome).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Msg("request finished")
	})
}

// requestOutcome classifies a finished request by the state of its context.
// A request that timed out before writing a header is reported as 504.
func requestOutcome(ctx context.Context, status int) (int, string) {
	switch err := ctx.Err(); {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, outcomeClientClosed
	case errors.Is(err, context.DeadlineExceeded):
		if status == 0 {
			status = http.StatusGatewayTimeout
		}
		return status, outcomeTimeout
	}

	if status == 0 {
		status = http.StatusOK
	}
	return status, outcomeCompleted
}
