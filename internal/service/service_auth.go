package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// authService is the concrete implementation of AuthService.
// It verifies HS256 bearer tokens issued elsewhere.
type authService struct {
	// tokenSignKey is the HMAC secret used to verify JWT tokens. An empty key
	// disables authentication.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

func (a *authService) Enabled() bool {
	return a.tokenSignKey != ""
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the expiry and the issuer claim. Any validation failure (expired, wrong
// issuer, malformed) is normalised to an Unauthenticated error wrapping
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if !a.Enabled() {
		return models.Token{}, apperrors.Unauthenticated(ErrAuthenticationDisabled)
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().
			Err(err).
			Str("func", "authService.ParseToken").
			Msg("token rejected")
		return models.Token{}, apperrors.Unauthenticated(ErrTokenIsExpiredOrInvalid)
	}

	return token, nil
}
