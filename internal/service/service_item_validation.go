package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
)

// ItemServiceWrapper defines middleware composition for ItemService.
// Implementations wrap an existing ItemService to add behavior such as
// validating.
type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService // returns a decorated ItemService applying additional behavior
}

// ItemValidationService canonicalizes and validates item requests before
// they reach the wrapped ItemService.
type ItemValidationService struct {
	inner     ItemService
	validator validators.Validator
}

func NewItemValidationService() ItemServiceWrapper {
	return &ItemValidationService{
		validator: validators.NewItemValidator(),
	}
}

func (v *ItemValidationService) CreateItem(ctx context.Context, req models.ItemRequest) (models.Item, error) {
	if err := v.validator.Validate(ctx, &req); err != nil {
		return models.Item{}, err
	}
	return v.inner.CreateItem(ctx, req)
}

func (v *ItemValidationService) GetItem(ctx context.Context, id int64) (models.Item, error) {
	return v.inner.GetItem(ctx, id)
}

func (v *ItemValidationService) ListItems(ctx context.Context, opts models.ItemListOptions) ([]models.Item, error) {
	return v.inner.ListItems(ctx, opts)
}

func (v *ItemValidationService) UpdateItem(ctx context.Context, id int64, req models.ItemRequest) (models.Item, error) {
	if err := v.validator.Validate(ctx, &req); err != nil {
		return models.Item{}, err
	}
	return v.inner.UpdateItem(ctx, id, req)
}

func (v *ItemValidationService) DeleteItem(ctx context.Context, id int64) error {
	return v.inner.DeleteItem(ctx, id)
}

func (v *ItemValidationService) Wrap(wrapper ItemService) ItemService {
	v.inner = wrapper
	return v
}
