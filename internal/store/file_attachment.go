package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// attachmentFileStorage stores attachments as files in a single upload
// directory. All access goes through an [os.Root], so neither ".." nor a
// symlink can lead a write outside that directory.
type attachmentFileStorage struct {
	root   *os.Root
	logger *logger.Logger
}

// NewAttachmentFileStorage creates dir if needed and opens it as the
// upload root.
func NewAttachmentFileStorage(dir string, logger *logger.Logger) (AttachmentStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening upload directory: %w", err)
	}

	logger.Info().Str("dir", root.Name()).Msg("attachment storage opened")
	return &attachmentFileStorage{root: root, logger: logger}, nil
}

// SaveAttachment writes data to a new file called name. An existing file is
// never overwritten, and a partial file is removed on failure.
func (s *attachmentFileStorage) SaveAttachment(ctx context.Context, name string, data []byte) error {
	if !isPlainFileName(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeAttachmentName, name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log := logger.FromContext(ctx)

	file, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %q", ErrAttachmentExists, name)
		}
		log.Err(err).Str("func", "attachmentFileStorage.SaveAttachment").Msg("error creating attachment file")
		return fmt.Errorf("%w: %w", ErrWritingAttachment, err)
	}

	_, err = file.Write(data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.root.Remove(name)
		log.Err(err).Str("func", "attachmentFileStorage.SaveAttachment").Msg("error writing attachment file")
		return fmt.Errorf("%w: %w", ErrWritingAttachment, err)
	}

	log.Debug().Str("name", name).Int("size", len(data)).Msg("attachment saved")
	return nil
}

// Close releases the upload root.
func (s *attachmentFileStorage) Close() error {
	return s.root.Close()
}

func isPlainFileName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		filepath.Base(name) == name && filepath.IsLocal(name)
}
