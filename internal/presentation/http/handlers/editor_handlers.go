// Package handlers provides HTTP handlers for the proposal editor API
package handlers

import (
	"net/http"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/session"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// OpenSessionRequest starts an editor session, optionally backed by a
// stored proposal.
type OpenSessionRequest struct {
	ProposalID string `json:"proposalId"`
}

// AddElementRequest places a new element of the given kind.
type AddElementRequest struct {
	Kind string  `json:"kind" binding:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ReorderRequest steps an element's stacking order.
type ReorderRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// InlineEditRequest opens inline editing on an element.
type InlineEditRequest struct {
	ElementID string `json:"elementId" binding:"required"`
}

// InlineBufferRequest replaces the uncommitted inline-edit text.
type InlineBufferRequest struct {
	Text string `json:"text"`
}

// LoadTemplateRequest replaces the session document with a template copy.
type LoadTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

// ActiveSectionRequest switches the section new elements land in.
type ActiveSectionRequest struct {
	SectionID string `json:"sectionId" binding:"required"`
}

// AddSectionRequest appends a page to the document.
type AddSectionRequest struct {
	Title string `json:"title"`
}

// RenameSectionRequest retitles an existing page.
type RenameSectionRequest struct {
	Title string `json:"title" binding:"required"`
}

// EditorHandlers contains all editor-session HTTP handlers
type EditorHandlers struct {
	editorService *services.EditorService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewEditorHandlers creates editor handlers with injected dependencies
func NewEditorHandlers(editorService *services.EditorService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EditorHandlers {
	return &EditorHandlers{
		editorService: editorService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// PostSession handles POST /api/v1/editor/sessions
func (h *EditorHandlers) PostSession(c *gin.Context) {
	start := time.Now()

	var req OpenSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	marker := h.perfTracker.StartOperation("open_editor_session", "")
	sess, err := h.editorService.OpenSession(req.ProposalID)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	state := sess.Snapshot()
	h.logger.Editor().Info("Open session request completed", "sessionId", sess.ID, "duration", time.Since(start))
	c.JSON(http.StatusCreated, gin.H{
		"sessionId":       sess.ID,
		"document":        state.Doc,
		"activeSectionId": state.ActiveSectionID,
	})
}

// GetSession handles GET /api/v1/editor/sessions/:id
func (h *EditorHandlers) GetSession(c *gin.Context) {
	sess, ok := h.editorService.Session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor session not found"})
		return
	}

	state := sess.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sessionId":        sess.ID,
		"document":         state.Doc,
		"activeSectionId":  state.ActiveSectionID,
		"selectedId":       state.SelectedID,
		"phase":            state.Phase,
		"editingElementId": state.EditingID,
		"proposalId":       state.ProposalID,
	})
}

// DeleteSession handles DELETE /api/v1/editor/sessions/:id
func (h *EditorHandlers) DeleteSession(c *gin.Context) {
	h.editorService.CloseSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// PostElement handles POST /api/v1/editor/sessions/:id/elements
func (h *EditorHandlers) PostElement(c *gin.Context) {
	sessionID := c.Param("id")

	var req AddElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("add_element", sessionID)
	el, err := h.editorService.AddElement(sessionID, proposal.Kind(req.Kind), req.X, req.Y)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusCreated, gin.H{"element": el})
}

// PatchElement handles PATCH /api/v1/editor/sessions/:id/elements/:elementId
func (h *EditorHandlers) PatchElement(c *gin.Context) {
	sessionID := c.Param("id")

	var patch proposal.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("update_element", sessionID)
	el, err := h.editorService.UpdateElement(sessionID, c.Param("elementId"), patch)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{"element": el})
}

// DeleteElement handles DELETE /api/v1/editor/sessions/:id/elements/:elementId
func (h *EditorHandlers) DeleteElement(c *gin.Context) {
	sessionID := c.Param("id")

	marker := h.perfTracker.StartOperation("remove_element", sessionID)
	if err := h.editorService.RemoveElement(sessionID, c.Param("elementId")); err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.Status(http.StatusNoContent)
}

// PostDuplicate handles POST /api/v1/editor/sessions/:id/elements/:elementId/duplicate
func (h *EditorHandlers) PostDuplicate(c *gin.Context) {
	sessionID := c.Param("id")

	marker := h.perfTracker.StartOperation("duplicate_element", sessionID)
	el, err := h.editorService.Duplicate(sessionID, c.Param("elementId"))
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusCreated, gin.H{"element": el})
}

// PostReorder handles POST /api/v1/editor/sessions/:id/elements/:elementId/reorder
func (h *EditorHandlers) PostReorder(c *gin.Context) {
	sessionID := c.Param("id")

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	direction := proposal.ReorderDirection(req.Direction)
	if direction != proposal.ReorderForward && direction != proposal.ReorderBackward {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be forward or backward"})
		return
	}

	if err := h.editorService.Reorder(sessionID, c.Param("elementId"), direction); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// PostPointer handles POST /api/v1/editor/sessions/:id/pointer
func (h *EditorHandlers) PostPointer(c *gin.Context) {
	sessionID := c.Param("id")

	var ev session.PointerEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.editorService.HandlePointer(sessionID, ev); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	sess, ok := h.editorService.Session(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "editor session not found"})
		return
	}
	state := sess.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"phase":      state.Phase,
		"selectedId": state.SelectedID,
	})
}

// PostEscape handles POST /api/v1/editor/sessions/:id/escape
func (h *EditorHandlers) PostEscape(c *gin.Context) {
	if err := h.editorService.PressEscape(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostDeleteSelected handles POST /api/v1/editor/sessions/:id/selection/delete
func (h *EditorHandlers) PostDeleteSelected(c *gin.Context) {
	if err := h.editorService.DeleteSelected(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostInlineEdit handles POST /api/v1/editor/sessions/:id/inline-edit
func (h *EditorHandlers) PostInlineEdit(c *gin.Context) {
	var req InlineEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.editorService.BeginInlineEdit(c.Param("id"), req.ElementID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PutInlineEdit handles PUT /api/v1/editor/sessions/:id/inline-edit
func (h *EditorHandlers) PutInlineEdit(c *gin.Context) {
	var req InlineBufferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.editorService.UpdateInlineBuffer(c.Param("id"), req.Text); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostInlineEditCommit handles POST /api/v1/editor/sessions/:id/inline-edit/commit
func (h *EditorHandlers) PostInlineEditCommit(c *gin.Context) {
	el, err := h.editorService.CommitInlineEdit(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"element": el})
}

// DeleteInlineEdit handles DELETE /api/v1/editor/sessions/:id/inline-edit
func (h *EditorHandlers) DeleteInlineEdit(c *gin.Context) {
	if err := h.editorService.AbandonInlineEdit(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostTemplate handles POST /api/v1/editor/sessions/:id/template
func (h *EditorHandlers) PostTemplate(c *gin.Context) {
	sessionID := c.Param("id")

	var req LoadTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("load_template", sessionID)
	doc, err := h.editorService.LoadTemplate(sessionID, req.TemplateID)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// PostSave handles POST /api/v1/editor/sessions/:id/save
func (h *EditorHandlers) PostSave(c *gin.Context) {
	sessionID := c.Param("id")

	marker := h.perfTracker.StartOperation("save_proposal", sessionID)
	record, err := h.editorService.SaveProposal(sessionID)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{"proposalId": record.ID, "title": record.Title})
}

// PutActiveSection handles PUT /api/v1/editor/sessions/:id/sections/active
func (h *EditorHandlers) PutActiveSection(c *gin.Context) {
	var req ActiveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.editorService.SetActiveSection(c.Param("id"), req.SectionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostSection handles POST /api/v1/editor/sessions/:id/sections
func (h *EditorHandlers) PostSection(c *gin.Context) {
	var req AddSectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	section, err := h.editorService.AddSection(c.Param("id"), req.Title)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// PutSection handles PUT /api/v1/editor/sessions/:id/sections/:sectionId
func (h *EditorHandlers) PutSection(c *gin.Context) {
	var req RenameSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.editorService.RenameSection(c.Param("id"), c.Param("sectionId"), req.Title); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
