package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// Storages groups all repositories into a single value that can be passed
// around the service layer.
type Storages struct {
	ItemRepository    ItemRepository
	AuditRepository   AuditRepository
	AttachmentStorage AttachmentStorage

	db *DB
}

// NewStorages initialises the storage layer selected by cfg.DB.Driver:
//   - "memory": in-process maps, nothing to migrate;
//   - "pgx" / "sqlite3": opens the connection, runs pending migrations,
//     and wires the SQL repositories.
//
// Attachments are stored in cfg.UploadDir for every driver. No attachment
// storage is wired when it is empty.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	storages, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.UploadDir != "" {
		storages.AttachmentStorage, err = NewAttachmentFileStorage(cfg.UploadDir, logger)
		if err != nil {
			_ = storages.Close()
			return nil, err
		}
	}

	return storages, nil
}

func newRepositories(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverMemory, "":
		return &Storages{
			ItemRepository:  NewMemoryItemRepository(),
			AuditRepository: NewMemoryAuditRepository(),
		}, nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStorages(db, logger), nil
}

// NewSQLStorages wires SQL repositories on an already open connection.
func NewSQLStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		ItemRepository:  NewItemRepository(db, logger),
		AuditRepository: NewAuditRepository(db, logger),
		db:              db,
	}
}

// Close releases the database connection and the upload directory, if
// any.
func (s *Storages) Close() error {
	var errs []error
	if closer, ok := s.AttachmentStorage.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
