package services

import (
	"fmt"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	domainservices "github.com/DecorForge/proposalcraft-go/internal/domain/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

// ProposalService is the CRUD surface over stored proposals. Documents are
// validated on the way in so a bad payload never reaches the database.
type ProposalService struct {
	repo      repositories.ProposalRepository
	integrity *domainservices.DocumentIntegrityService
	logger    *logging.ChanneledLogger
}

func NewProposalService(repo repositories.ProposalRepository, logger *logging.ChanneledLogger) *ProposalService {
	return &ProposalService{
		repo:      repo,
		integrity: domainservices.NewDocumentIntegrityService(),
		logger:    logger,
	}
}

// List returns all stored proposals, newest change first.
func (s *ProposalService) List() ([]*repositories.ProposalRecord, error) {
	records, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return records, nil
}

// Get returns a proposal by id, nil when missing.
func (s *ProposalService) Get(id string) (*repositories.ProposalRecord, error) {
	return s.repo.FindByID(id)
}

// Save validates and upserts a proposal record.
func (s *ProposalService) Save(record *repositories.ProposalRecord) error {
	if record.ID == "" {
		return fmt.Errorf("proposal id is required")
	}
	if record.Document == nil {
		return fmt.Errorf("proposal document is required")
	}
	if err := s.integrity.ValidateDocument(record.Document); err != nil {
		return fmt.Errorf("document failed validation: %w", err)
	}
	if record.Title == "" {
		record.Title = record.Document.Title
	}
	now := time.Now().UTC()
	record.Changed = &now

	if err := s.repo.Store(record); err != nil {
		return err
	}
	s.logger.Content().Info("Proposal stored", "proposalId", record.ID, "title", record.Title)
	return nil
}

// Delete removes a proposal row. Deleting an unknown id is not an error.
func (s *ProposalService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete proposal %s: %w", id, err)
	}
	s.logger.Content().Info("Proposal deleted", "proposalId", id)
	return nil
}
