package grpc

import (
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the health service in addition to
// the overall server status "".
const ServiceName = "task-tracker"

// Handler is the root gRPC transport handler.
//
// It owns the standard grpc.health.v1 service and the unary interceptor
// chain that binds correlation IDs and maps application errors to gRPC
// status codes. A handler instance is created once at startup and shared by
// the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. Both the server and ServiceName start as SERVING.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register attaches every gRPC service of the handler to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// ServerOptions returns the options the gRPC server must be created with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			h.correlationInterceptor,
			h.loggingInterceptor,
			h.statusInterceptor,
			h.recoverInterceptor,
		),
	}
}

// Shutdown marks every service NOT_SERVING so that health checks fail
// while in-flight calls drain.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
