package service

import (
	"github.com/MKhiriev/go-bulk-notes/internal/bulk"
	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/store"
)

type Services struct {
	NoteService    NoteService
	AppInfoService AppInfoService
}

// NewServices wires the service layer: the core note service wrapped with
// payload validation, plus app info. hooks is the composed hook set handed
// down from main (change-event publishing and any embedder extensions).
func NewServices(storages *store.Storages, cfg config.StructuredConfig, hooks bulk.Hooks, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		NoteService:    NewNoteValidationService().Wrap(NewNoteService(storages.NoteRepository, hooks, logger)),
		AppInfoService: appInfoService,
	}, nil
}
