package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init builds the router. The middleware order is fixed: the correlation
// id is bound first so every later log line carries it, and logging wraps
// recovery so a recovered panic still gets its terminal log line.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withCorrelationID,
		h.withTimeout,
		h.withLogging,
		h.withRecover,
		h.withMetrics,
		h.withGZip,
	)

	router.With(h.rateLimit(h.rateLimits.Health)).Get("/health", h.handle(h.health))
	router.Get("/version", h.handle(h.getServerVersion))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	router.Route("/items", func(r chi.Router) {
		r.Get("/", h.handle(h.listItems))
		r.With(h.rateLimit(h.rateLimits.Read)).Get("/{id}", h.handle(h.getItem))

		// mutating routes require a bearer token when auth is enabled
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.With(h.rateLimit(h.rateLimits.Create)).Post("/", h.handle(h.createItem))
			r.Put("/{id}", h.handle(h.updateItem))
			r.Delete("/{id}", h.handle(h.deleteItem))
			r.Post("/{id}/attachments", h.handle(h.attachFile))
		})
	})

	router.With(h.rateLimit(h.rateLimits.Create)).Post("/payments", h.handle(h.normalizePayment))

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.checkHTTPMethod)

	return router
}
