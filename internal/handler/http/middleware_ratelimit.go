package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/go-chi/httprate"
)

// rateLimitResetHeader is set by httprate to the unix time at which the
// current window ends.
const rateLimitResetHeader = "X-RateLimit-Reset"

// rateLimit allows quota requests per client IP in each configured window.
// Requests over the quota get a rate-limited problem. A non-positive quota
// or window disables the limit.
func (h *Handler) rateLimit(quota int) func(http.Handler) http.Handler {
	window := h.rateLimits.Window
	if quota <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(quota, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			h.writeProblem(w, r, apperrors.RateLimited(retryAfter(w.Header(), window)))
		}),
		httprate.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			h.writeProblem(w, r, apperrors.Internal(fmt.Errorf("%w: %w", errRateLimiter, err)))
		}),
	)
}

// retryAfter is the time left until the window reported in header resets,
// or the whole window when the header is missing.
func retryAfter(header http.Header, window time.Duration) time.Duration {
	reset, err := strconv.ParseInt(header.Get(rateLimitResetHeader), 10, 64)
	if err != nil {
		return window
	}
	if d := time.Until(time.Unix(reset, 0)); d > 0 {
		return d
	}
	return window
}
