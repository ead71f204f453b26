package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/go-chi/chi/v5"
)

// maxMultipartOverhead is allowed on top of the file itself for part
// headers and boundaries.
const maxMultipartOverhead = 1 << 20

// attachFile stores the "file" part of a multipart form for an item.
func (h *Handler) attachFile(w http.ResponseWriter, r *http.Request) error {
	id, err := validators.ParseItemID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	data, err := readUpload(w, r)
	if err != nil {
		return err
	}

	att, err := h.services.AttachmentService.AttachFile(r.Context(), id, data)
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, att, http.StatusCreated)
	return err
}

// readUpload returns the content of the "file" part. At most one byte over
// the size limit is read so that the validator can tell the file is too
// large.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, validators.MaxUploadSize+maxMultipartOverhead)

	file, _, err := r.FormFile(validators.FieldFile)
	if err != nil {
		return nil, uploadError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, validators.MaxUploadSize+1))
	if err != nil {
		return nil, uploadError(err)
	}
	return data, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return apperrors.Validation(apperrors.FieldError{Field: validators.FieldFile, Message: validators.ErrFileTooLarge.Error()})
	case errors.Is(err, http.ErrMissingFile):
		return apperrors.Validation(apperrors.FieldError{Field: validators.FieldFile, Message: validators.ErrFileRequired.Error()})
	default:
		return bodyError(ErrMalformedForm)
	}
}
