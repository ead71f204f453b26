package validators

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

func TestSniffUpload(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   UploadKind
		wantOK bool
	}{
		{name: "png", data: pngHeader, want: UploadKind{ContentType: "image/png", Extension: ".png"}, wantOK: true},
		{name: "jpeg", data: jpegHeader, want: UploadKind{ContentType: "image/jpeg", Extension: ".jpg"}, wantOK: true},
		{name: "empty", data: nil},
		{name: "text", data: []byte("hello")},
		{name: "html posing as image", data: []byte("<html><img src=x.png></html>")},
		{name: "gif", data: []byte("GIF89a\x01\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SniffUpload(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantMsg string
	}{
		{name: "png", data: pngHeader},
		{name: "at size limit", data: append(append([]byte{}, pngHeader...), make([]byte, MaxUploadSize-len(pngHeader))...)},
		{name: "too large", data: append(append([]byte{}, jpegHeader...), make([]byte, MaxUploadSize)...), wantMsg: ErrFileTooLarge.Error()},
		{name: "empty", data: []byte{}, wantMsg: ErrFileEmpty.Error()},
		{name: "unsupported", data: bytes.Repeat([]byte("a"), 64), wantMsg: ErrUnsupportedFileType.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateUpload(tt.data)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}

			fields := fieldsOf(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, FieldFile, fields[0].Field)
			assert.Equal(t, tt.wantMsg, fields[0].Message)
		})
	}
}
