// Package services provides document validation
package services

import (
	"fmt"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
)

// DocumentIntegrityService validates documents crossing the persistence
// boundary. Documents produced through the model's own operations always
// pass; a failure indicates a hand-edited or corrupted payload.
type DocumentIntegrityService struct{}

func NewDocumentIntegrityService() *DocumentIntegrityService {
	return &DocumentIntegrityService{}
}

// ValidateDocument checks the document-wide invariants: at least one
// section, unique non-empty ids, known kinds, and geometry inside the
// clamped range.
func (s *DocumentIntegrityService) ValidateDocument(doc *proposal.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if doc.ID == "" {
		return fmt.Errorf("document has no id")
	}
	if len(doc.Sections) == 0 {
		return fmt.Errorf("document %s has no sections", doc.ID)
	}

	seen := make(map[string]bool)
	for _, section := range doc.Sections {
		if section.ID == "" {
			return fmt.Errorf("document %s contains a section with no id", doc.ID)
		}
		if seen[section.ID] {
			return fmt.Errorf("duplicate section id %s", section.ID)
		}
		seen[section.ID] = true

		for _, el := range section.Elements {
			if err := s.validateElement(el); err != nil {
				return fmt.Errorf("section %s: %w", section.ID, err)
			}
			if seen[el.ID] {
				return fmt.Errorf("duplicate element id %s", el.ID)
			}
			seen[el.ID] = true
		}
	}
	return nil
}

func (s *DocumentIntegrityService) validateElement(el *proposal.Element) error {
	if el.ID == "" {
		return fmt.Errorf("element has no id")
	}
	if !el.Kind.Valid() {
		return fmt.Errorf("element %s has unknown kind %q", el.ID, el.Kind)
	}
	if el.Content == nil {
		return fmt.Errorf("element %s has no content payload", el.ID)
	}
	if el.Content.ContentKind() != el.Kind {
		return fmt.Errorf("element %s content payload does not match kind %s", el.ID, el.Kind)
	}

	g := el.Geometry
	if g.X < 0 || g.Y < 0 {
		return fmt.Errorf("element %s has negative position (%v, %v)", el.ID, g.X, g.Y)
	}
	if g.Width < proposal.MinElementSize || g.Height < proposal.MinElementSize {
		return fmt.Errorf("element %s is below minimum size (%v x %v)", el.ID, g.Width, g.Height)
	}
	return nil
}
