package grpc

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalCode = codes.Internal

type statusSpec struct {
	code    codes.Code
	message string
}

// statusSpecs mirrors the public details of the HTTP problem responses.
var statusSpecs = map[apperrors.Kind]statusSpec{
	apperrors.KindValidation:      {code: codes.InvalidArgument, message: "Invalid request parameters"},
	apperrors.KindNotFound:        {code: codes.NotFound, message: "Resource not found"},
	apperrors.KindForbidden:       {code: codes.PermissionDenied, message: "Access denied"},
	apperrors.KindUnauthenticated: {code: codes.Unauthenticated, message: "Authentication required"},
	apperrors.KindRateLimited:     {code: codes.ResourceExhausted, message: "Rate limit exceeded"},
	apperrors.KindInternal:        {code: internalCode, message: "Internal error"},
}

// toStatus maps err to a gRPC status. Status errors raised by gRPC
// services themselves pass through; everything else is classified by its
// apperrors kind, with untyped errors treated as internal.
func toStatus(err error) *status.Status {
	if _, ok := apperrors.As(err); !ok {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return status.FromContextError(err)
		}
		if st, ok := status.FromError(err); ok {
			return st
		}
	}

	spec, ok := statusSpecs[apperrors.KindOf(err)]
	if !ok {
		spec = statusSpecs[apperrors.KindInternal]
	}
	return status.New(spec.code, spec.message)
}
