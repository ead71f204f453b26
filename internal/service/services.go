package service

import (
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/models"
)

type Services struct {
	AuthService       AuthService
	ItemService       ItemService
	PaymentService    PaymentService
	AttachmentService AttachmentService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, auditor Auditor, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	itemService := NewItemValidationService().Wrap(
		NewItemService(storages.ItemRepository, auditor, logger),
	)

	return &Services{
		AuthService:       NewAuthService(cfg.App, logger),
		ItemService:       itemService,
		PaymentService:    NewPaymentService(logger),
		AttachmentService: NewAttachmentService(storages.ItemRepository, storages.AttachmentStorage, auditor, logger),
		AppInfoService:    appInfoService,
	}, nil
}
