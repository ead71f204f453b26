package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

// ItemRepository persists tracked items.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	ListItems(ctx context.Context, opts models.ItemListOptions) ([]models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// AuditRepository is an append-only store of audit entries. It exposes no
// update or delete operation.
type AuditRepository interface {
	AppendAuditEntries(ctx context.Context, entries []models.AuditLogEntry) error
	ListAuditEntries(ctx context.Context, correlationID string) ([]models.AuditLogEntry, error)
}

// AttachmentStorage keeps uploaded files outside the relational database.
// Names are chosen by the caller and must be plain file names.
type AttachmentStorage interface {
	SaveAttachment(ctx context.Context, name string, data []byte) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
