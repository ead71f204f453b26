// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProblemDetails is the RFC 7807 error document returned to clients with
// the "application/problem+json" media type.
//
// Detail and Errors[].Message only ever carry fixed, client-safe strings.
// The underlying cause of a failure is logged server-side under the same
// CorrelationID.
type ProblemDetails struct {
	// Type is a URI identifying the error category. Every error kind has
	// its own URI.
	Type string `json:"type"`

	// Title is a short human-readable summary of the error category.
	Title string `json:"title"`

	// Status mirrors the HTTP status code of the response.
	Status int `json:"status"`

	// Detail is a generic, non-sensitive explanation.
	Detail string `json:"detail"`

	// Instance is the request path that produced the error.
	Instance string `json:"instance"`

	// CorrelationID is the identifier of the request, equal to the
	// X-Correlation-ID response header.
	CorrelationID string `json:"correlation_id"`

	// Errors lists field-level validation issues. Present only for
	// validation failures.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single invalid input field using only the field
// name and a high-level constraint description.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
