package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
)

// problemSpec is the fixed public description of one error kind.
type problemSpec struct {
	status int
	title  string
	detail string
	slug   string
}

// Problem type slugs, appended to the configured base URI.
const (
	slugValidation      = "validation-error"
	slugNotFound        = "not-found"
	slugForbidden       = "forbidden"
	slugUnauthenticated = "unauthorized"
	slugRateLimited     = "rate-limited"
	slugInternal        = "internal-error"
)

var problemSpecs = map[apperrors.Kind]problemSpec{
	apperrors.KindValidation:      {status: http.StatusUnprocessableEntity, title: "Validation Error", detail: "Invalid request parameters", slug: slugValidation},
	apperrors.KindNotFound:        {status: http.StatusNotFound, title: "Not Found", detail: "Resource not found", slug: slugNotFound},
	apperrors.KindForbidden:       {status: http.StatusForbidden, title: "Forbidden", detail: "Access denied", slug: slugForbidden},
	apperrors.KindUnauthenticated: {status: http.StatusUnauthorized, title: "Unauthorized", detail: "Authentication required", slug: slugUnauthenticated},
	apperrors.KindRateLimited:     {status: http.StatusTooManyRequests, title: "Too Many Requests", detail: "Rate limit exceeded", slug: slugRateLimited},
	apperrors.KindInternal:        {status: http.StatusInternalServerError, title: "Internal Server Error", detail: "Internal error", slug: slugInternal},
}

// specFor returns the problem description of kind. Unknown kinds are
// internal errors.
func specFor(kind apperrors.Kind) problemSpec {
	if spec, ok := problemSpecs[kind]; ok {
		return spec
	}
	return problemSpecs[apperrors.KindInternal]
}

// statusFromError maps err to an HTTP status. Errors without a kind are
// internal errors.
func statusFromError(err error) int {
	return specFor(apperrors.KindOf(err)).status
}
