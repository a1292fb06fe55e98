// Package proposal defines the application's core proposal-editor domain entities.
package proposal

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Kind identifies the content variant of an element. The set is closed;
// every consumer switches exhaustively over it.
type Kind string

const (
	KindHeading      Kind = "Heading"
	KindText         Kind = "Text"
	KindImage        Kind = "Image"
	KindPricingTable Kind = "PricingTable"
	KindScopeBlock   Kind = "ScopeBlock"
)

// Kinds returns every defined element kind in palette order.
func Kinds() []Kind {
	return []Kind{KindHeading, KindText, KindImage, KindPricingTable, KindScopeBlock}
}

// Valid reports whether k is one of the defined element kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHeading, KindText, KindImage, KindPricingTable, KindScopeBlock:
		return true
	}
	return false
}

// Geometry is an element's placement box in page-local units.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is the atomic placeable unit on a proposal page.
type Element struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	Geometry Geometry          `json:"geometry"`
	ZIndex   int               `json:"zIndex"`
	Style    map[string]string `json:"style"`
	Content  Content           `json:"content"`
}

// Content is the kind-specific payload of an element.
type Content interface {
	ContentKind() Kind
	Clone() Content
}

// HeadingContent is the payload for Heading elements.
type HeadingContent struct {
	Text string `json:"text"`
}

func (c *HeadingContent) ContentKind() Kind { return KindHeading }
func (c *HeadingContent) Clone() Content    { cp := *c; return &cp }

// TextContent is the payload for Text elements.
type TextContent struct {
	Text string `json:"text"`
}

func (c *TextContent) ContentKind() Kind { return KindText }
func (c *TextContent) Clone() Content    { cp := *c; return &cp }

// ImageContent is the payload for Image elements. LoadFailed is a declarative
// render flag set by the client when the browser fails to load Src; the
// renderer shows a placeholder for it instead of a broken image.
type ImageContent struct {
	Src        string `json:"src"`
	Alt        string `json:"alt"`
	LoadFailed bool   `json:"loadFailed,omitempty"`
}

func (c *ImageContent) ContentKind() Kind { return KindImage }
func (c *ImageContent) Clone() Content    { cp := *c; return &cp }

// PricingItem is one row of a pricing table.
type PricingItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// PricingTableContent is the payload for PricingTable elements. Total is
// recomputed from Items by the document whenever a patch touches the rows;
// a patch that sets Total without touching Items is honored as an explicit
// override.
type PricingTableContent struct {
	Items []PricingItem `json:"items"`
	Total float64       `json:"total"`
}

func (c *PricingTableContent) ContentKind() Kind { return KindPricingTable }

func (c *PricingTableContent) Clone() Content {
	cp := &PricingTableContent{Total: c.Total}
	if c.Items != nil {
		cp.Items = make([]PricingItem, len(c.Items))
		copy(cp.Items, c.Items)
	}
	return cp
}

// ItemSum returns the sum of all row prices.
func (c *PricingTableContent) ItemSum() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price
	}
	return sum
}

// ScopeBlockContent is the payload for ScopeBlock elements.
type ScopeBlockContent struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func (c *ScopeBlockContent) ContentKind() Kind { return KindScopeBlock }

func (c *ScopeBlockContent) Clone() Content {
	cp := &ScopeBlockContent{Title: c.Title}
	if c.Items != nil {
		cp.Items = make([]string, len(c.Items))
		copy(cp.Items, c.Items)
	}
	return cp
}

// NewID generates a new ULID element/document identifier. ULIDs are
// monotonic within a process, so freshly generated ids never collide with
// ids already present in a document or template.
func NewID() string {
	return ulid.Make().String()
}

// Clone returns a deep copy of the element with the same id.
func (e *Element) Clone() *Element {
	cp := *e
	if e.Style != nil {
		cp.Style = make(map[string]string, len(e.Style))
		for k, v := range e.Style {
			cp.Style[k] = v
		}
	}
	if e.Content != nil {
		cp.Content = e.Content.Clone()
	}
	return &cp
}

// elementShell mirrors Element with the content left raw so it can be
// decoded into the kind's concrete payload type.
type elementShell struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	Geometry Geometry          `json:"geometry"`
	ZIndex   int               `json:"zIndex"`
	Style    map[string]string `json:"style"`
	Content  json.RawMessage   `json:"content"`
}

// UnmarshalJSON decodes an element, dispatching the content payload on Kind.
func (e *Element) UnmarshalJSON(data []byte) error {
	var shell elementShell
	if err := json.Unmarshal(data, &shell); err != nil {
		return err
	}

	content, err := decodeContent(shell.Kind, shell.Content)
	if err != nil {
		return err
	}

	e.ID = shell.ID
	e.Kind = shell.Kind
	e.Geometry = shell.Geometry
	e.ZIndex = shell.ZIndex
	e.Style = shell.Style
	e.Content = content
	return nil
}

func decodeContent(kind Kind, raw json.RawMessage) (Content, error) {
	var content Content
	switch kind {
	case KindHeading:
		content = &HeadingContent{}
	case KindText:
		content = &TextContent{}
	case KindImage:
		content = &ImageContent{}
	case KindPricingTable:
		content = &PricingTableContent{}
	case KindScopeBlock:
		content = &ScopeBlockContent{}
	default:
		return nil, fmt.Errorf("unknown element kind %q", kind)
	}

	if len(raw) == 0 {
		return content, nil
	}
	if err := json.Unmarshal(raw, content); err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", kind, err)
	}
	return content, nil
}
