package service

import (
	"context"
	"strconv"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/google/uuid"
)

// ActionItemAttach is recorded for every stored attachment.
const ActionItemAttach = "item.attach"

type attachmentService struct {
	itemRepository    store.ItemRepository
	attachmentStorage store.AttachmentStorage
	auditor           Auditor

	now     func() time.Time
	newName func() string

	logger *logger.Logger
}

// NewAttachmentService returns an AttachmentService that writes files to
// attachmentStorage under server-generated names. Ownership of the item is
// checked the same way as for updates.
func NewAttachmentService(itemRepository store.ItemRepository, attachmentStorage store.AttachmentStorage, auditor Auditor, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		itemRepository:    itemRepository,
		attachmentStorage: attachmentStorage,
		auditor:           auditor,
		now:               func() time.Time { return time.Now().UTC() },
		newName:           uuid.NewString,
		logger:            logger,
	}
}

func (a *attachmentService) AttachFile(ctx context.Context, itemID int64, data []byte) (models.Attachment, error) {
	kind, err := validators.ValidateUpload(data)
	if err != nil {
		return models.Attachment{}, err
	}

	resourceID := strconv.FormatInt(itemID, 10)
	if _, err = authorizeOwner(ctx, a.itemRepository, itemID); err != nil {
		recordAudit(ctx, a.auditor, ActionItemAttach, resourceID, err, nil)
		return models.Attachment{}, err
	}

	if a.attachmentStorage == nil {
		err = apperrors.Internal(ErrAttachmentStorageNotConfigured)
		recordAudit(ctx, a.auditor, ActionItemAttach, resourceID, err, nil)
		return models.Attachment{}, err
	}

	name := a.newName() + kind.Extension
	if err = a.attachmentStorage.SaveAttachment(ctx, name, data); err != nil {
		err = apperrors.Internal(err)
		recordAudit(ctx, a.auditor, ActionItemAttach, resourceID, err, nil)
		return models.Attachment{}, err
	}

	recordAudit(ctx, a.auditor, ActionItemAttach, resourceID, nil, map[string]string{
		"content_type": kind.ContentType,
		"size":         strconv.Itoa(len(data)),
	})

	return models.Attachment{
		ItemID:      itemID,
		FileName:    name,
		ContentType: kind.ContentType,
		Size:        int64(len(data)),
		CreatedAt:   a.now(),
	}, nil
}
