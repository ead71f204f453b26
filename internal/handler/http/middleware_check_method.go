// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
)

// checkHTTPMethod is registered as the router's MethodNotAllowed handler
// via [chi.Mux.MethodNotAllowed].
//
// Chi answers a known path with an unregistered method with 405. This
// handler answers with the not-found problem instead, so that callers
// using an unsupported method cannot tell which routes exist.
func (h *Handler) checkHTTPMethod(w http.ResponseWriter, r *http.Request) {
	h.writeProblem(w, r, apperrors.NotFound("route", r.Method+" "+r.URL.Path))
}

// notFound is the router's NotFound handler.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeProblem(w, r, apperrors.NotFound("route", r.URL.Path))
}
