// Package container provides dependency injection for all singleton services
package container

import (
	"log/slog"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/caching"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/media"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/messaging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/persistence/content"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/persistence/database"
	"github.com/DecorForge/proposalcraft-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons except EditorService,
	// which owns the live session registry)
	ProposalService *services.ProposalService
	TemplateService *services.TemplateService
	EditorService   *services.EditorService
	ImageService    *services.ImageService

	// Infrastructure
	DB          *database.DB
	Cache       *caching.Store
	PreviewHub  *messaging.PreviewHub
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewContainer wires every singleton service against the shared database,
// cache, and preview hub.
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) *Container {
	cache := caching.NewStore(config.ContentCacheTTL, logger)
	perfTracker := performance.NewTracker(config.SlowOperationThreshold, config.MaxPerfMarkers, logger)
	previewHub := messaging.NewPreviewHub(logger)

	proposalRepo := content.NewProposalRepository(db.DB, cache, logger)
	templateRepo := content.NewTemplateRepository(db.DB, cache, logger)
	imageProcessor := media.NewImageProcessor(config.MediaPath, config.MaxImageWidth)

	return &Container{
		ProposalService: services.NewProposalService(proposalRepo, logger),
		TemplateService: services.NewTemplateService(templateRepo, logger),
		EditorService:   services.NewEditorService(proposalRepo, templateRepo, previewHub, logger),
		ImageService:    services.NewImageService(imageProcessor, logger),

		DB:          db,
		Cache:       cache,
		PreviewHub:  previewHub,
		Logger:      logger,
		PerfTracker: perfTracker,
	}
}

// NewLoggerConfig builds the channeled logger configuration from the
// environment-driven settings.
func NewLoggerConfig() *logging.LoggerConfig {
	level := slog.LevelInfo
	if config.LogDebug {
		level = slog.LevelDebug
	}
	return &logging.LoggerConfig{
		OutputToFile:    config.LogToFile,
		OutputToConsole: true,
		LogDirectory:    config.LogDirectory,
		JSONFormat:      config.LogJSONFormat,
		DefaultLevel:    level,
	}
}
