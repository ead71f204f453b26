package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// CorrelationMetadataKey carries the correlation ID in request and response
// metadata. gRPC metadata keys are lower case.
const CorrelationMetadataKey = "x-correlation-id"

// correlationInterceptor adopts a valid inbound correlation ID or generates
// a new one and echoes it in the response header metadata.
func (h *Handler) correlationInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var inbound string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(CorrelationMetadataKey); len(values) > 0 {
			inbound = values[0]
		}
	}

	id, adopted := correlation.Resolve(inbound)
	ctx = correlation.WithID(ctx, id)
	ctx, log := h.logger.WithCorrelationID(ctx, id)

	if !adopted && inbound != "" {
		log.Debug().Int("inbound_length", len(inbound)).Msg("invalid inbound correlation id replaced")
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(CorrelationMetadataKey, id)); err != nil {
		log.Warn().Err(err).Str("func", "Handler.correlationInterceptor").Msg("failed to set correlation header")
	}

	return handler(ctx, req)
}

func (h *Handler) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	log.Info().Str("method", info.FullMethod).Msg("call started")

	resp, err := handler(ctx, req)

	log.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("call finished")

	return resp, err
}

// statusInterceptor converts application errors into gRPC status errors
// whose messages carry only the fixed public detail of their kind.
func (h *Handler) statusInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}

	st := toStatus(err)
	log := logger.FromContextOr(ctx, h.logger)
	if st.Code() == internalCode {
		log.Error().
			Err(err).
			Str("location", apperrors.LocationOf(err)).
			Str("method", info.FullMethod).
			Msg("internal error")
	} else {
		log.Info().
			Str("code", st.Code().String()).
			Str("method", info.FullMethod).
			Msg("call rejected")
	}

	return resp, st.Err()
}

func (h *Handler) recoverInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContextOr(ctx, h.logger).Error().
				Str("stack", string(debug.Stack())).
				Str("method", info.FullMethod).
				Msg("recovered from panic")
			err = apperrors.Internal(fmt.Errorf("%w: %v", errPanic, rec))
		}
	}()

	return handler(ctx, req)
}
