// Package templates defines the reusable proposal template entity.
package templates

import (
	"strings"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
)

// Template is a named, categorized, versioned document snapshot used as an
// instantiation source. A template is never mutated in place; it only ever
// produces new documents.
type Template struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Version     int                `json:"version"`
	Description string             `json:"description,omitempty"`
	Document    *proposal.Document `json:"document"`
}

// Matches reports whether the template passes a category filter and a
// case-insensitive substring name search. Empty filter values match
// everything.
func (t *Template) Matches(category, query string) bool {
	if category != "" && !strings.EqualFold(t.Category, category) {
		return false
	}
	if query != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(query)) {
		return false
	}
	return true
}

// Instantiate deep-copies the template's document and regenerates every id
// (document, sections, elements), so the result shares no identity with the
// template or with any previously instantiated document. Geometry, content,
// style, and stacking order are preserved field-for-field.
func (t *Template) Instantiate() *proposal.Document {
	doc := t.Document.Clone()
	doc.ID = proposal.NewID()
	doc.Title = t.Name
	for _, section := range doc.Sections {
		section.ID = proposal.NewID()
		for _, el := range section.Elements {
			el.ID = proposal.NewID()
		}
	}
	return doc
}
