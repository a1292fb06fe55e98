package handlers

import (
	"net/http"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/messaging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the HTTP layer; the upgrade itself accepts any
	// origin the middleware let through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PreviewHandlers upgrades preview connections to websockets and attaches
// them to the hub.
type PreviewHandlers struct {
	editorService *services.EditorService
	hub           *messaging.PreviewHub
	logger        *logging.ChanneledLogger
}

// NewPreviewHandlers creates preview handlers with injected dependencies
func NewPreviewHandlers(editorService *services.EditorService, hub *messaging.PreviewHub, logger *logging.ChanneledLogger) *PreviewHandlers {
	return &PreviewHandlers{
		editorService: editorService,
		hub:           hub,
		logger:        logger,
	}
}

// GetPreviewSocket handles GET /api/v1/editor/sessions/:id/preview
func (h *PreviewHandlers) GetPreviewSocket(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := h.editorService.Session(sessionID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor session not found"})
		return
	}

	conn, err := previewUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.SSE().Error("Preview websocket upgrade failed", "sessionId", sessionID, "error", err.Error())
		return
	}

	client := &messaging.PreviewClient{
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, 16),
	}
	h.hub.Register(client)

	// Preview clients never send mutations; the read loop only detects
	// disconnects.
	go func() {
		defer h.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
