package services

import (
	"fmt"
	"sort"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

// TemplateService exposes the template library: listing with filters,
// category enumeration, and standalone instantiation.
type TemplateService struct {
	repo   repositories.TemplateRepository
	logger *logging.ChanneledLogger
}

func NewTemplateService(repo repositories.TemplateRepository, logger *logging.ChanneledLogger) *TemplateService {
	return &TemplateService{repo: repo, logger: logger}
}

// List returns templates matching the category and name query. Empty
// filters match everything.
func (s *TemplateService) List(category, query string) ([]*templates.Template, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	matched := make([]*templates.Template, 0, len(all))
	for _, t := range all {
		if t.Matches(category, query) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// Categories returns the distinct categories present in the library, sorted.
func (s *TemplateService) Categories() ([]string, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, t := range all {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// GetByID returns a single template, nil when missing.
func (s *TemplateService) GetByID(id string) (*templates.Template, error) {
	return s.repo.FindByID(id)
}

// Instantiate produces an independent document from a template, with fresh
// ids throughout.
func (s *TemplateService) Instantiate(id string) (*proposal.Document, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("template %s not found", id)
	}

	doc := t.Instantiate()
	s.logger.Template().Info("Template instantiated", "templateId", id, "documentId", doc.ID)
	return doc, nil
}
