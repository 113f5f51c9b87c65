package http

import (
	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/service"
)

type Handler struct {
	services *service.Services

	bulkCfg config.Bulk
	appCfg  config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, bulkCfg config.Bulk, appCfg config.App, logger *logger.Logger) *Handler {
	logger.Info().
		Bool("post_force_bulk", bulkCfg.PostForceBulk).
		Bool("post_allow_update", bulkCfg.PostAllowUpdate).
		Msg("http handler created")

	return &Handler{
		services: services,
		bulkCfg:  bulkCfg,
		appCfg:   appCfg,
		logger:   logger,
	}
}
