package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// Audit actions recorded by the item service.
const (
	ActionItemCreate = "item.create"
	ActionItemUpdate = "item.update"
	ActionItemDelete = "item.delete"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type itemService struct {
	itemRepository store.ItemRepository
	auditor        Auditor

	now func() time.Time

	logger *logger.Logger
}

// NewItemService returns an ItemService backed by itemRepository. Create,
// update and delete outcomes are recorded through auditor.
func NewItemService(itemRepository store.ItemRepository, auditor Auditor, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		auditor:        auditor,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (s *itemService) CreateItem(ctx context.Context, req models.ItemRequest) (models.Item, error) {
	now := s.now()
	item := models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		item.OwnerID = &userID
	}

	created, err := s.itemRepository.CreateItem(ctx, item)
	if err != nil {
		err = mapStoreError(err, 0)
		s.record(ctx, ActionItemCreate, "", err, nil)
		return models.Item{}, err
	}

	s.record(ctx, ActionItemCreate, formatID(created.ID), nil, map[string]string{
		"fields": changedFields(req),
	})
	return created, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (models.Item, error) {
	item, err := s.itemRepository.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, mapStoreError(err, id)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, opts models.ItemListOptions) ([]models.Item, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Limit > MaxListLimit {
		opts.Limit = MaxListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	items, err := s.itemRepository.ListItems(ctx, opts)
	if err != nil {
		return nil, mapStoreError(err, 0)
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, req models.ItemRequest) (models.Item, error) {
	existing, err := s.authorizeOwner(ctx, id)
	if err != nil {
		s.record(ctx, ActionItemUpdate, formatID(id), err, nil)
		return models.Item{}, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.UpdatedAt = s.now()

	updated, err := s.itemRepository.UpdateItem(ctx, existing)
	if err != nil {
		err = mapStoreError(err, id)
		s.record(ctx, ActionItemUpdate, formatID(id), err, nil)
		return models.Item{}, err
	}

	s.record(ctx, ActionItemUpdate, formatID(id), nil, map[string]string{
		"fields": changedFields(req),
	})
	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.authorizeOwner(ctx, id); err != nil {
		s.record(ctx, ActionItemDelete, formatID(id), err, nil)
		return err
	}

	if err := s.itemRepository.DeleteItem(ctx, id); err != nil {
		err = mapStoreError(err, id)
		s.record(ctx, ActionItemDelete, formatID(id), err, nil)
		return err
	}

	s.record(ctx, ActionItemDelete, formatID(id), nil, nil)
	return nil
}

func (s *itemService) authorizeOwner(ctx context.Context, id int64) (models.Item, error) {
	return authorizeOwner(ctx, s.itemRepository, id)
}

// authorizeOwner loads the item and checks that the caller may modify it.
// Items without an owner may be modified by anyone.
func authorizeOwner(ctx context.Context, itemRepository store.ItemRepository, id int64) (models.Item, error) {
	item, err := itemRepository.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, mapStoreError(err, id)
	}
	if item.OwnerID == nil {
		return item, nil
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID != *item.OwnerID {
		logger.FromContext(ctx).Warn().
			Str("func", "service.authorizeOwner").
			Int64("item_id", id).
			Msg("access to item of a different user")
		return models.Item{}, apperrors.Forbidden(ErrUnauthorizedAccessToDifferentUserData.Error())
	}
	return item, nil
}

func (s *itemService) record(ctx context.Context, action, resourceID string, err error, details map[string]string) {
	recordAudit(ctx, s.auditor, action, resourceID, err, details)
}

// recordAudit hands one outcome to auditor. A failure carries only the
// error kind, never the error text.
func recordAudit(ctx context.Context, auditor Auditor, action, resourceID string, err error, details map[string]string) {
	if auditor == nil {
		return
	}

	entry := models.AuditLogEntry{
		Action:     action,
		ResourceID: resourceID,
		Status:     models.AuditStatusSuccess,
		Details:    details,
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		entry.UserID = &userID
	}
	if err != nil {
		entry.Status = models.AuditStatusFailure
		entry.Details = map[string]string{"error_kind": apperrors.KindOf(err).String()}
	}

	auditor.Record(ctx, entry)
}

// mapStoreError converts repository errors into the application taxonomy.
// Errors that already carry a kind are returned unchanged.
func mapStoreError(err error, id int64) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, store.ErrItemNotFound) {
		return apperrors.NotFound("item", id)
	}
	return apperrors.Internal(err)
}

// changedFields lists the optional fields present in req, name first.
func changedFields(req models.ItemRequest) string {
	fields := []string{"name"}
	if req.Description != nil {
		fields = append(fields, "description")
	}
	if req.Price != nil {
		fields = append(fields, "price")
	}
	return strings.Join(fields, ",")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
