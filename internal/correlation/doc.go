// Package correlation carries the per-request correlation identifier.
//
// A correlation ID threads one inbound request through logs, audit entries,
// error bodies and outbound calls. It is established once at the edge of
// the service (HTTP middleware or gRPC interceptor), stored in the request
// [context.Context] and never mutated afterwards. Nothing in this package
// holds global state: the only place an ID lives is the context it was
// attached to, so concurrently served requests can never observe each
// other's IDs.
//
// Inbound IDs are adopted verbatim only when they are syntactically valid
// UUIDs in canonical 36-character form. Anything else, including an empty
// value, is replaced with a freshly generated UUID.
package correlation
