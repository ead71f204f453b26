// Package apperrors defines the closed error taxonomy raised by business
// logic and consumed by the transport layers.
//
// Every failure that reaches a client is classified into exactly one
// [Kind]. Business code raises *Error values through the constructors in
// this package (Validation, NotFound, Forbidden, Unauthenticated,
// RateLimited, Internal) and wraps them with %w freely; transports recover
// the classification with [KindOf] or [As]. Errors that were never
// classified are treated as [KindInternal].
//
// An *Error carries two kinds of data: client-safe fields (Fields,
// RetryAfter) that transports may serialize, and diagnostic fields (the
// wrapped cause and the Location it was raised at) that must only ever be
// logged server-side.
package apperrors
