package proposal

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrElementNotFound is returned by UpdateElement and Duplicate when the
// target id does not exist. Callers treat it as a stale reference, not a
// user-facing condition.
var ErrElementNotFound = errors.New("element not found")

// ErrSectionNotFound is returned when an operation names a section id that
// is not part of the document.
var ErrSectionNotFound = errors.New("section not found")

// DuplicateOffset is the fixed x/y delta applied to duplicated elements so
// the copy is visibly distinct from its source.
const DuplicateOffset = 10

// Section is a named container owning an ordered subsequence of elements,
// typically one per printed page.
type Section struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Elements []*Element `json:"elements"`
}

// Document is the full in-memory proposal being edited. Every element
// belongs to exactly one section and element ids are unique document-wide.
type Document struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
}

// NewDocument creates an empty document with a single default section.
func NewDocument(title string) *Document {
	return &Document{
		ID:    NewID(),
		Title: title,
		Sections: []*Section{
			{ID: NewID(), Title: "Page 1"},
		},
	}
}

// AddSection appends a new empty section and returns it.
func (d *Document) AddSection(title string) *Section {
	section := &Section{ID: NewID(), Title: title}
	d.Sections = append(d.Sections, section)
	return section
}

// RenameSection changes the title of an existing section.
func (d *Document) RenameSection(id, title string) error {
	section, ok := d.Section(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	section.Title = title
	return nil
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (*Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// FindElement returns the element with the given id and its owning section.
func (d *Document) FindElement(id string) (*Element, *Section, bool) {
	for _, s := range d.Sections {
		for _, el := range s.Elements {
			if el.ID == id {
				return el, s, true
			}
		}
	}
	return nil, nil, false
}

// HasElement reports whether an element with the given id exists.
func (d *Document) HasElement(id string) bool {
	_, _, ok := d.FindElement(id)
	return ok
}

// Elements returns every element in document order (sections in order, each
// section's elements in insertion order).
func (d *Document) Elements() []*Element {
	var out []*Element
	for _, s := range d.Sections {
		out = append(out, s.Elements...)
	}
	return out
}

// MaxZIndex returns the highest z-index in the document, or 0 when empty.
func (d *Document) MaxZIndex() int {
	max := 0
	for _, el := range d.Elements() {
		if el.ZIndex > max {
			max = el.ZIndex
		}
	}
	return max
}

// AddElement constructs a default element of the given kind at (x, y),
// stacks it above everything already present, and appends it to the named
// section. Selection is the caller's concern; the document stays
// selection-agnostic.
func (d *Document) AddElement(sectionID string, kind Kind, x, y float64) (*Element, error) {
	section, ok := d.Section(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	el := NewElement(kind, x, y)
	el.ZIndex = d.MaxZIndex() + 1
	section.Elements = append(section.Elements, el)
	return el, nil
}

// UpdateElement merges patch into the element's fields. Geometry merges
// field-by-field and is clamped; style keys merge into the existing map
// unless Style.Replace is set; content merges per kind. Returns
// ErrElementNotFound for a stale id.
func (d *Document) UpdateElement(id string, patch ElementPatch) (*Element, error) {
	el, _, ok := d.FindElement(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}

	if patch.Geometry != nil {
		g := el.Geometry
		if patch.Geometry.X != nil {
			g.X = *patch.Geometry.X
		}
		if patch.Geometry.Y != nil {
			g.Y = *patch.Geometry.Y
		}
		if patch.Geometry.Width != nil {
			g.Width = *patch.Geometry.Width
		}
		if patch.Geometry.Height != nil {
			g.Height = *patch.Geometry.Height
		}
		el.Geometry = ClampGeometry(g)
	}

	if patch.ZIndex != nil {
		z := *patch.ZIndex
		if z < 1 {
			z = 1
		}
		el.ZIndex = z
	}

	if patch.Style != nil {
		if patch.Style.Replace {
			el.Style = make(map[string]string, len(patch.Style.Set))
		} else if el.Style == nil {
			el.Style = make(map[string]string, len(patch.Style.Set))
		}
		for k, v := range patch.Style.Set {
			el.Style[k] = v
		}
		for _, k := range patch.Style.Unset {
			delete(el.Style, k)
		}
	}

	if patch.Content != nil {
		applyContentPatch(el, patch.Content)
	}

	return el, nil
}

// RemoveElement deletes the element with the given id. Removing a
// non-existent id is a no-op: delete/delete races are possible in the UI
// and must not error.
func (d *Document) RemoveElement(id string) {
	for _, s := range d.Sections {
		for i, el := range s.Elements {
			if el.ID == id {
				s.Elements = append(s.Elements[:i], s.Elements[i+1:]...)
				return
			}
		}
	}
}

// ReorderDirection selects the stacking adjustment for Reorder.
type ReorderDirection string

const (
	ReorderForward  ReorderDirection = "forward"
	ReorderBackward ReorderDirection = "backward"
)

// Reorder steps the element's z-index by one. Forward has no ceiling; new
// elements can always out-rank. Backward never drops below 1.
func (d *Document) Reorder(id string, direction ReorderDirection) {
	el, _, ok := d.FindElement(id)
	if !ok {
		return
	}

	switch direction {
	case ReorderForward:
		el.ZIndex++
	case ReorderBackward:
		if el.ZIndex > 1 {
			el.ZIndex--
		}
	}
}

// Duplicate deep-copies the element under a fresh id, offsets it by
// DuplicateOffset so the copy is visibly distinct, and stacks it above
// everything else in the document. The copy joins the source's section; the
// source is untouched.
func (d *Document) Duplicate(id string) (*Element, error) {
	el, section, ok := d.FindElement(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}

	cp := el.Clone()
	cp.ID = NewID()
	cp.Geometry.X += DuplicateOffset
	cp.Geometry.Y += DuplicateOffset
	cp.ZIndex = d.MaxZIndex() + 1
	section.Elements = append(section.Elements, cp)
	return cp, nil
}

// Clone returns a deep copy of the document sharing no state with the
// original. Ids are preserved; template instantiation regenerates them on
// top of a clone.
func (d *Document) Clone() *Document {
	cp := &Document{ID: d.ID, Title: d.Title}
	for _, s := range d.Sections {
		sc := &Section{ID: s.ID, Title: s.Title}
		for _, el := range s.Elements {
			sc.Elements = append(sc.Elements, el.Clone())
		}
		cp.Sections = append(cp.Sections, sc)
	}
	return cp
}

// Serialize encodes the document into its JSON wire shape, the contract
// shared with the persistence and export collaborators.
func (d *Document) Serialize() ([]byte, error) {
	return json.Marshal(d)
}

// Deserialize decodes a document from its JSON wire shape.
func Deserialize(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}
