// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Errors raised while decoding request input. They are reported to clients
// only as field errors with fixed messages.
var (
	ErrEmptyBody       = errors.New("request body is empty")
	ErrMalformedBody   = errors.New("request body is not valid JSON")
	ErrUnknownBodyKey  = errors.New("request body contains an unknown field")
	ErrBodyTooLarge    = errors.New("request body is too large")
	ErrInvalidGzipBody = errors.New("request body is not valid gzip")
	ErrMalformedForm   = errors.New("request body is not a valid multipart form")

	errPanic       = errors.New("panic while serving request")
	errRateLimiter = errors.New("rate limiter failed")
)
