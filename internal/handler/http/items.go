package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps the size of an item request body.
const maxBodyBytes = 1 << 20

// Query parameters of the list endpoint.
const (
	queryLimit  = "limit"
	queryOffset = "offset"
)

const (
	msgInvalidType   = "has an invalid type"
	msgInvalidLimit  = "must be an integer between 1 and 1000"
	msgInvalidOffset = "must be a non-negative integer"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeItemRequest(w, r)
	if err != nil {
		return err
	}

	item, err := h.services.ItemService.CreateItem(r.Context(), req)
	if err != nil {
		return err
	}

	w.Header().Set("Location", "/items/"+strconv.FormatInt(item.ID, 10))
	_, err = utils.WriteJSON(w, item, http.StatusCreated)
	return err
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) error {
	id, err := validators.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	item, err := h.services.ItemService.GetItem(r.Context(), id)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, item, http.StatusOK)
	return err
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) error {
	opts, err := parseListOptions(r)
	if err != nil {
		return err
	}

	items, err := h.services.ItemService.ListItems(r.Context(), opts)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.Item{}
	}

	_, err = utils.WriteJSON(w, items, http.StatusOK)
	return err
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) error {
	id, err := validators.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	req, err := decodeItemRequest(w, r)
	if err != nil {
		return err
	}

	item, err := h.services.ItemService.UpdateItem(r.Context(), id, req)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, item, http.StatusOK)
	return err
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) error {
	id, err := validators.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err = h.services.ItemService.DeleteItem(r.Context(), id); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// decodeItemRequest reads exactly one JSON object from the request body.
func decodeItemRequest(w http.ResponseWriter, r *http.Request) (models.ItemRequest, error) {
	return decodeJSONBody[models.ItemRequest](w, r, isItemField)
}

// decodeJSONBody reads exactly one JSON object of type T. Every decoding
// failure is a validation error; a value of the wrong type is reported on
// its own field when isField knows it, anything else on field "body".
func decodeJSONBody[T any](w http.ResponseWriter, r *http.Request, isField func(string) bool) (T, error) {
	var req, zero T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return zero, decodeError(err, isField)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return zero, bodyError(ErrMalformedBody)
	}

	return req, nil
}

func decodeError(err error, isField func(string) bool) error {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return bodyError(ErrEmptyBody)
	case errors.As(err, &maxErr):
		return bodyError(ErrBodyTooLarge)
	case errors.As(err, &typeErr) && isField(typeErr.Field):
		return apperrors.Validation(apperrors.FieldError{Field: typeErr.Field, Message: msgInvalidType})
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return bodyError(ErrUnknownBodyKey)
	default:
		return bodyError(ErrMalformedBody)
	}
}

func bodyError(err error) error {
	return apperrors.Validation(apperrors.FieldError{Field: validators.FieldBody, Message: err.Error()})
}

func isItemField(field string) bool {
	switch field {
	case validators.FieldName, validators.FieldDescription, validators.FieldPrice:
		return true
	}
	return false
}

// parseListOptions reads limit and offset. Absent values fall back to the
// service defaults; both violations are reported together.
func parseListOptions(r *http.Request) (models.ItemListOptions, error) {
	var (
		opts       models.ItemListOptions
		violations []apperrors.FieldError
	)
	query := r.URL.Query()

	if raw := query.Get(queryLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > service.MaxListLimit {
			violations = append(violations, apperrors.FieldError{Field: queryLimit, Message: msgInvalidLimit})
		}
		opts.Limit = limit
	}

	if raw := query.Get(queryOffset); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			violations = append(violations, apperrors.FieldError{Field: queryOffset, Message: msgInvalidOffset})
		}
		opts.Offset = offset
	}

	if len(violations) > 0 {
		return models.ItemListOptions{}, apperrors.Validation(violations...)
	}
	return opts, nil
}
