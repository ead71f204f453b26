// Package http implements the HTTP transport layer of the task tracker.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Every request gets a correlation ID that is echoed in the
// X-Correlation-ID header, attached to the request logger and reported in
// error bodies. Handlers return errors instead of writing them; Handler.handle
// turns them into RFC 7807 problem details.
package http
