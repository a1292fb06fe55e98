// Package templates renders proposal documents into HTML fragments for the
// editor canvas and the properties inspector.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/session"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

var canvasTemplates = template.Must(template.New("canvasRenderer").Parse(
	`{{define "sectionWrapper"}}<section id="section-{{.ID}}" class="proposal-page{{if .Active}} active{{end}}" data-section-id="{{.ID}}"><h2 class="page-title">{{.Title}}</h2><div class="page-surface">{{end}}` +
		`{{define "elementWrapper"}}<div id="element-{{.ID}}" class="proposal-element element-{{.KindClass}}{{if .Selected}} selected{{end}}" data-element-id="{{.ID}}" data-kind="{{.Kind}}" style="{{.Style}}">{{end}}` +
		`{{define "resizeHandle"}}<div class="resize-handle handle-{{.}}" data-handle="{{.}}"></div>{{end}}`,
))

type sectionWrapperData struct {
	ID     string
	Title  string
	Active bool
}

type elementWrapperData struct {
	ID        string
	Kind      string
	KindClass string
	Selected  bool
	Style     template.CSS
}

// RenderContext carries everything the canvas and inspector renderers need
// for one session: the document plus the session's UI state.
type RenderContext struct {
	Doc             *proposal.Document
	ActiveSectionID string
	SelectedID      string
	Phase           session.Phase
	EditingID       string
	EditBuffer      string
	CurrencyCode    string
}

// CanvasRenderer composes the full canvas HTML for a render context.
type CanvasRenderer struct {
	ctx    *RenderContext
	logger *logging.ChanneledLogger
}

// NewCanvasRenderer creates a canvas renderer. logger may be nil.
func NewCanvasRenderer(ctx *RenderContext, logger *logging.ChanneledLogger) *CanvasRenderer {
	return &CanvasRenderer{ctx: ctx, logger: logger}
}

// Render returns the HTML for every section of the document.
func (r *CanvasRenderer) Render() string {
	var html strings.Builder
	html.WriteString(`<div class="proposal-canvas">`)
	for _, section := range r.ctx.Doc.Sections {
		html.WriteString(r.RenderSection(section))
	}
	html.WriteString(`</div>`)
	return html.String()
}

// RenderSection returns the HTML for one page, elements in stacking order.
func (r *CanvasRenderer) RenderSection(section *proposal.Section) string {
	var html strings.Builder

	var buf bytes.Buffer
	if err := canvasTemplates.ExecuteTemplate(&buf, "sectionWrapper", sectionWrapperData{
		ID:     section.ID,
		Title:  section.Title,
		Active: section.ID == r.ctx.ActiveSectionID,
	}); err != nil {
		r.logError("section wrapper render failed", section.ID, err)
		return ""
	}
	html.Write(buf.Bytes())

	for _, el := range stackingOrder(section.Elements) {
		html.WriteString(r.RenderElement(el))
	}

	html.WriteString(`</div></section>`)
	return html.String()
}

// RenderElement returns the HTML for one element, including its selection
// outline and resize handles when it is the selection target.
func (r *CanvasRenderer) RenderElement(el *proposal.Element) string {
	body, ok := r.renderContent(el)
	if !ok {
		return ""
	}

	selected := el.ID == r.ctx.SelectedID

	var html strings.Builder
	var buf bytes.Buffer
	if err := canvasTemplates.ExecuteTemplate(&buf, "elementWrapper", elementWrapperData{
		ID:        el.ID,
		Kind:      string(el.Kind),
		KindClass: kindClass(el.Kind),
		Selected:  selected,
		Style:     elementCSS(el),
	}); err != nil {
		r.logError("element wrapper render failed", el.ID, err)
		return ""
	}
	html.Write(buf.Bytes())

	html.WriteString(body)

	if selected {
		for _, h := range session.Handles() {
			buf.Reset()
			if err := canvasTemplates.ExecuteTemplate(&buf, "resizeHandle", string(h)); err != nil {
				r.logError("resize handle render failed", el.ID, err)
				continue
			}
			html.Write(buf.Bytes())
		}
	}

	html.WriteString(`</div>`)
	return html.String()
}

// renderContent dispatches on the element kind. An unknown kind is skipped
// and logged rather than failing the whole canvas.
func (r *CanvasRenderer) renderContent(el *proposal.Element) (string, bool) {
	editing := el.ID == r.ctx.EditingID

	switch el.Kind {
	case proposal.KindHeading:
		return renderHeading(el, editing, r.ctx.EditBuffer), true
	case proposal.KindText:
		return renderText(el, editing, r.ctx.EditBuffer), true
	case proposal.KindImage:
		return renderImage(el), true
	case proposal.KindPricingTable:
		return renderPricingTable(el, r.ctx.CurrencyCode), true
	case proposal.KindScopeBlock:
		return renderScopeBlock(el), true
	default:
		r.logError("skipping element of unknown kind", el.ID, fmt.Errorf("kind %q", el.Kind))
		return "", false
	}
}

func (r *CanvasRenderer) logError(msg, id string, err error) {
	if r.logger != nil {
		r.logger.Editor().Error(msg, "elementId", id, "error", err.Error())
	}
}

// stackingOrder sorts elements by z-index ascending. Equal z-indexes keep
// their slice order so repeated renders are byte-stable.
func stackingOrder(elements []*proposal.Element) []*proposal.Element {
	ordered := make([]*proposal.Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})
	return ordered
}

// elementCSS builds the inline placement style for an element. Geometry and
// z-index come first, then the element's own style map in sorted key order.
func elementCSS(el *proposal.Element) template.CSS {
	var css strings.Builder
	fmt.Fprintf(&css, "position:absolute;left:%gpx;top:%gpx;width:%gpx;height:%gpx;z-index:%d;",
		el.Geometry.X, el.Geometry.Y, el.Geometry.Width, el.Geometry.Height, el.ZIndex)

	keys := make([]string, 0, len(el.Style))
	for k := range el.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := el.Style[k]
		if !safeCSSFragment(k) || !safeCSSFragment(v) {
			continue
		}
		fmt.Fprintf(&css, "%s:%s;", cssProperty(k), cssValue(k, v))
	}
	return template.CSS(css.String())
}

// cssProperty converts a camelCase style key to its CSS property name.
func cssProperty(key string) string {
	var out strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			out.WriteByte('-')
			out.WriteRune(r + ('a' - 'A'))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// cssValue appends px to bare numeric values of length-typed properties.
// Style maps store font sizes unitless.
func cssValue(key, value string) string {
	switch key {
	case "fontSize", "lineHeight", "borderRadius", "padding":
		if isDigits(value) {
			return value + "px"
		}
	}
	return value
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// safeCSSFragment rejects style keys or values that could escape the style
// attribute or smuggle markup.
func safeCSSFragment(s string) bool {
	return !strings.ContainsAny(s, `<>"';{}`)
}

func kindClass(k proposal.Kind) string {
	switch k {
	case proposal.KindHeading:
		return "heading"
	case proposal.KindText:
		return "text"
	case proposal.KindImage:
		return "image"
	case proposal.KindPricingTable:
		return "pricing-table"
	case proposal.KindScopeBlock:
		return "scope-block"
	}
	return "unknown"
}
