package validators

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
)

// FieldFile is reported for problems with an uploaded file.
const FieldFile = "file"

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 5_000_000

// UploadKind is the detected type of an upload.
type UploadKind struct {
	ContentType string
	Extension   string
}

// uploadKinds lists the accepted content types, detected from the leading
// bytes of the file.
var uploadKinds = map[string]UploadKind{
	"image/png":  {ContentType: "image/png", Extension: ".png"},
	"image/jpeg": {ContentType: "image/jpeg", Extension: ".jpg"},
}

// SniffUpload detects the type of data from its content. The client's
// declared type and file name are never consulted.
func SniffUpload(data []byte) (UploadKind, bool) {
	if len(data) == 0 {
		return UploadKind{}, false
	}
	kind, ok := uploadKinds[http.DetectContentType(data)]
	return kind, ok
}

// ValidateUpload checks the size of data before its type.
func ValidateUpload(data []byte) (UploadKind, error) {
	var err error
	switch {
	case len(data) > MaxUploadSize:
		err = ErrFileTooLarge
	case len(data) == 0:
		err = ErrFileEmpty
	}
	if err != nil {
		return UploadKind{}, apperrors.Validation(apperrors.FieldError{Field: FieldFile, Message: err.Error()})
	}

	kind, ok := SniffUpload(data)
	if !ok {
		return UploadKind{}, apperrors.Validation(apperrors.FieldError{Field: FieldFile, Message: ErrUnsupportedFileType.Error()})
	}
	return kind, nil
}
