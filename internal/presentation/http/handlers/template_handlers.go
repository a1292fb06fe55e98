package handlers

import (
	"net/http"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// TemplateHandlers contains all template library HTTP handlers
type TemplateHandlers struct {
	templateService *services.TemplateService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewTemplateHandlers creates template handlers with injected dependencies
func NewTemplateHandlers(templateService *services.TemplateService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *TemplateHandlers {
	return &TemplateHandlers{
		templateService: templateService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetTemplates handles GET /api/v1/templates with optional category and q filters
func (h *TemplateHandlers) GetTemplates(c *gin.Context) {
	start := time.Now()
	category := c.Query("category")
	query := c.Query("q")

	marker := h.perfTracker.StartOperation("list_templates", "")
	list, err := h.templateService.List(category, query)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	h.logger.Template().Info("List templates request completed",
		"category", category, "query", query, "count", len(list), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"templates": list, "count": len(list)})
}

// GetTemplateCategories handles GET /api/v1/templates/categories
func (h *TemplateHandlers) GetTemplateCategories(c *gin.Context) {
	categories, err := h.templateService.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetTemplate handles GET /api/v1/templates/:id
func (h *TemplateHandlers) GetTemplate(c *gin.Context) {
	t, err := h.templateService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// PostTemplateInstantiate handles POST /api/v1/templates/:id/instantiate
func (h *TemplateHandlers) PostTemplateInstantiate(c *gin.Context) {
	id := c.Param("id")

	marker := h.perfTracker.StartOperation("instantiate_template", "")
	doc, err := h.templateService.Instantiate(id)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}
