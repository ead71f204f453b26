package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// When no token signing key is configured the middleware lets every
// request through. Otherwise it extracts the bearer token from the
// "Authorization" header, validates it via [service.AuthService.ParseToken]
// and stores the authenticated user's ID in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// A missing or invalid token is answered with a 401 problem carrying
// "WWW-Authenticate: Bearer".
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.services.AuthService.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("func", "Handler.auth").Send()
			h.writeProblem(w, r, apperrors.Unauthenticated(err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeProblem(w, r, err)
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "Bearer <token>".
//
// It returns the following sentinel errors:
//   - [ErrEmptyAuthorizationHeader] if the header is empty.
//   - [ErrInvalidAuthorizationHeader] if the scheme is not Bearer or the
//     value has extra parts.
//   - [ErrEmptyToken] if the scheme is present but the token is missing.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	parts := strings.Fields(authHeader)
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	if len(parts) == 1 {
		return "", ErrEmptyToken
	}
	if len(parts) > 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	return parts[1], nil
}
