package handlers

import (
	"net/http"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// UploadImageRequest carries a base64 data URI for an image element.
type UploadImageRequest struct {
	Data string `json:"data" binding:"required"`
}

// DeleteImageRequest names a stored image by its media URL.
type DeleteImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImageHandlers contains image upload HTTP handlers
type ImageHandlers struct {
	imageService *services.ImageService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewImageHandlers creates image handlers with injected dependencies
func NewImageHandlers(imageService *services.ImageService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ImageHandlers {
	return &ImageHandlers{
		imageService: imageService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// PostImage handles POST /api/v1/images
func (h *ImageHandlers) PostImage(c *gin.Context) {
	start := time.Now()

	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("upload_image", "")
	url, err := h.imageService.Upload(req.Data)
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	h.logger.Media().Info("Image upload request completed", "url", url, "duration", time.Since(start))
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// DeleteImage handles DELETE /api/v1/images
func (h *ImageHandlers) DeleteImage(c *gin.Context) {
	var req DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.imageService.Delete(req.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
