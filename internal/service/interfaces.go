package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ItemService is the task CRUD collaborator. Every error it returns is an
// *apperrors.Error or wraps one.
type ItemService interface {
	CreateItem(ctx context.Context, req models.ItemRequest) (models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	ListItems(ctx context.Context, opts models.ItemListOptions) ([]models.Item, error)
	UpdateItem(ctx context.Context, id int64, req models.ItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// PaymentService validates payments and returns them in normalized form.
type PaymentService interface {
	NormalizePayment(ctx context.Context, req models.PaymentRequest) (models.Payment, error)
}

// AttachmentService stores files uploaded for an item.
type AttachmentService interface {
	AttachFile(ctx context.Context, itemID int64, data []byte) (models.Attachment, error)
}

// AuthService verifies bearer tokens. Issuing tokens is out of its scope.
type AuthService interface {
	// Enabled reports whether a token signing key is configured.
	Enabled() bool
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// Auditor records significant actions. Record must not block on the audit
// sink.
type Auditor interface {
	Record(ctx context.Context, entry models.AuditLogEntry)
}
