package handlers

import (
	"net/http"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/presentation/templates"
	"github.com/DecorForge/proposalcraft-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// FragmentHandlers serves server-rendered HTML fragments for the editor
// canvas and the properties inspector.
type FragmentHandlers struct {
	editorService *services.EditorService
	logger        *logging.ChanneledLogger
}

// NewFragmentHandlers creates a new fragment handlers instance
func NewFragmentHandlers(editorService *services.EditorService, logger *logging.ChanneledLogger) *FragmentHandlers {
	return &FragmentHandlers{
		editorService: editorService,
		logger:        logger,
	}
}

// GetCanvasFragment handles GET /api/v1/editor/sessions/:id/fragments/canvas
func (h *FragmentHandlers) GetCanvasFragment(c *gin.Context) {
	start := time.Now()

	ctx, ok := h.renderContext(c)
	if !ok {
		return
	}

	html := templates.NewCanvasRenderer(ctx, h.logger).Render()
	h.logger.Editor().Debug("Canvas fragment rendered", "sessionId", c.Param("id"), "duration", time.Since(start))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetInspectorFragment handles GET /api/v1/editor/sessions/:id/fragments/inspector
func (h *FragmentHandlers) GetInspectorFragment(c *gin.Context) {
	start := time.Now()

	ctx, ok := h.renderContext(c)
	if !ok {
		return
	}

	html := templates.NewInspectorRenderer(ctx, h.logger).Render()
	h.logger.Editor().Debug("Inspector fragment rendered", "sessionId", c.Param("id"), "duration", time.Since(start))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *FragmentHandlers) renderContext(c *gin.Context) (*templates.RenderContext, bool) {
	sess, ok := h.editorService.Session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor session not found"})
		return nil, false
	}

	state := sess.Snapshot()
	return &templates.RenderContext{
		Doc:             state.Doc,
		ActiveSectionID: state.ActiveSectionID,
		SelectedID:      state.SelectedID,
		Phase:           state.Phase,
		EditingID:       state.EditingID,
		EditBuffer:      state.EditBuffer,
		CurrencyCode:    config.CurrencyCode,
	}, true
}
