package http

import (
	"context"
	"net/http"
)

// withTimeout bounds the request context by the configured request timeout.
// A zero timeout disables the bound. Handlers observe the deadline through
// the context; the response is not cut off.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	if h.requestTimeout <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
