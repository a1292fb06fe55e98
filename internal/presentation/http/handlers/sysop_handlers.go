package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DecorForge/proposalcraft-go/internal/application/container"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// SetLogLevelRequest changes one logging channel's level at runtime.
type SetLogLevelRequest struct {
	Channel string `json:"channel" binding:"required"`
	Level   string `json:"level" binding:"required"`
}

// SysOpHandlers exposes the operator surface: runtime status, log-level
// control, and cache maintenance.
type SysOpHandlers struct {
	container *container.Container
}

// NewSysOpHandlers creates sysop handlers backed by the shared container.
func NewSysOpHandlers(container *container.Container) *SysOpHandlers {
	return &SysOpHandlers{container: container}
}

// GetStatus handles GET /api/v1/sysop/status. The optional sessionId query
// scopes the preview-client count to one editor session.
func (h *SysOpHandlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"completedOperations": h.container.PerfTracker.CompletedCount(),
		"previewClients":      h.container.PreviewHub.ClientCount(c.Query("sessionId")),
	})
}

// SetLogLevel handles POST /api/v1/sysop/log-level.
func (h *SysOpHandlers) SetLogLevel(c *gin.Context) {
	var req SetLogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var level slog.Level
	switch req.Level {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log level specified"})
		return
	}

	if err := h.container.Logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set log level", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("log level for channel '%s' set to '%s'", req.Channel, req.Level)})
}

// PostCachePurge handles POST /api/v1/sysop/cache/purge. Dropping the content
// cache forces the next reads back to the database.
func (h *SysOpHandlers) PostCachePurge(c *gin.Context) {
	h.container.Cache.Purge()
	h.container.Logger.Cache().Info("Content cache purged")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
