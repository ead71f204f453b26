// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external services the task
// tracker talks to.
//
// The primary abstraction is [AuditAdapter], which ships batches of audit
// entries to a remote collector. The package ships an HTTP/REST
// implementation ([NewHTTPAuditAdapter]) built on resty with bounded retries
// and X-Correlation-ID propagation.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrBadRequest] for 400, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_adapter_mock.go -package=mock

// AuditAdapter defines transport-agnostic delivery of audit entries to a
// remote collector. It satisfies audit.Sink.
type AuditAdapter interface {
	// Write delivers entries in a single request. The batch is either
	// accepted as a whole or an error is returned.
	Write(ctx context.Context, entries []models.AuditLogEntry) error
}
