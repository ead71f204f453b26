package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services

	problemTypeBase string
	requestTimeout  time.Duration
	rateLimits      config.RateLimit

	registry *prometheus.Registry
	metrics  *metrics

	logger *logger.Logger
}

// NewHandler creates a Handler with its own metrics registry.
func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	registry := prometheus.NewRegistry()

	base := cfg.App.ProblemTypeBase
	if base == "" {
		base = config.DefaultProblemTypeBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		problemTypeBase: base,
		requestTimeout:  cfg.Server.RequestTimeout,
		rateLimits:      cfg.Server.RateLimit,
		registry:        registry,
		metrics:         newMetrics(registry),
		logger:          logger,
	}
}

// appHandlerFunc is a request handler that reports failures by returning
// them. Only Handler.handle writes error responses.
type appHandlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc and translates a returned error into
// a problem details response.
func (h *Handler) handle(fn appHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeProblem(w, r, err)
		}
	}
}
