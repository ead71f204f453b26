// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/correlation"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// ProblemContentType is the media type of every error response.
const ProblemContentType = "application/problem+json"

// newProblem builds the public body for err. Only the fixed texts of the
// kind and the field errors of a validation error reach the client.
func (h *Handler) newProblem(r *http.Request, err error) models.ProblemDetails {
	kind := apperrors.KindOf(err)
	spec := specFor(kind)

	problem := models.ProblemDetails{
		Type:          h.problemTypeBase + spec.slug,
		Title:         spec.title,
		Status:        spec.status,
		Detail:        spec.detail,
		Instance:      r.URL.Path,
		CorrelationID: correlation.IDFromContext(r.Context()),
	}

	if appErr, ok := apperrors.As(err); ok && kind == apperrors.KindValidation {
		problem.Errors = make([]models.FieldError, 0, len(appErr.Fields))
		for _, f := range appErr.Fields {
			problem.Errors = append(problem.Errors, models.FieldError{Field: f.Field, Message: f.Message})
		}
	}

	return problem
}

// writeProblem logs err and writes its problem details response.
//
// 5xx errors are logged at error level with the full error text and the
// location where they were raised; the body carries only the fixed detail.
func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), h.logger)
	problem := h.newProblem(r, err)

	if rw, ok := w.(interface{ Written() bool }); ok && rw.Written() {
		log.Err(err).
			Str("func", "Handler.writeProblem").
			Msg("response already started, problem not written")
		return
	}

	if problem.Status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("location", apperrors.LocationOf(err)).
			Int("status", problem.Status).
			Str("instance", problem.Instance).
			Msg("internal error")
	} else {
		log.Info().
			Str("kind", apperrors.KindOf(err).String()).
			Int("status", problem.Status).
			Str("instance", problem.Instance).
			Msg("request rejected")
	}

	switch problem.Status {
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	case http.StatusTooManyRequests:
		if appErr, ok := apperrors.As(err); ok && appErr.RetryAfter > 0 {
			seconds := int64(math.Ceil(appErr.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		}
	}

	if h.metrics != nil {
		h.metrics.problems.WithLabelValues(problem.Type).Inc()
	}

	if _, err := utils.WriteJSONAs(w, problem, problem.Status, ProblemContentType); err != nil {
		log.Err(err).Str("func", "Handler.writeProblem").Msg("failed to write problem response")
	}
}
