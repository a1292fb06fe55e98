package handlers

import (
	"net/http"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/services"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// SaveProposalRequest defines the structure for storing a proposal directly.
type SaveProposalRequest struct {
	Title    string             `json:"title"`
	Document *proposal.Document `json:"document" binding:"required"`
}

// ProposalHandlers contains all proposal CRUD HTTP handlers
type ProposalHandlers struct {
	proposalService *services.ProposalService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewProposalHandlers creates proposal handlers with injected dependencies
func NewProposalHandlers(proposalService *services.ProposalService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProposalHandlers {
	return &ProposalHandlers{
		proposalService: proposalService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetProposals handles GET /api/v1/proposals
func (h *ProposalHandlers) GetProposals(c *gin.Context) {
	start := time.Now()

	marker := h.perfTracker.StartOperation("list_proposals", "")
	records, err := h.proposalService.List()
	if err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	h.logger.Content().Info("List proposals request completed", "count", len(records), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"proposals": records, "count": len(records)})
}

// GetProposal handles GET /api/v1/proposals/:id
func (h *ProposalHandlers) GetProposal(c *gin.Context) {
	id := c.Param("id")

	record, err := h.proposalService.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// PutProposal handles PUT /api/v1/proposals/:id
func (h *ProposalHandlers) PutProposal(c *gin.Context) {
	id := c.Param("id")

	var req SaveProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("save_proposal_direct", "")
	record := &repositories.ProposalRecord{
		ID:       id,
		Title:    req.Title,
		Document: req.Document,
	}
	if err := h.proposalService.Save(record); err != nil {
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{"proposalId": record.ID, "title": record.Title})
}

// DeleteProposal handles DELETE /api/v1/proposals/:id
func (h *ProposalHandlers) DeleteProposal(c *gin.Context) {
	if err := h.proposalService.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
