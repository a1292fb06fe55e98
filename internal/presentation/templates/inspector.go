package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

var inspectorTemplates = template.Must(template.New("inspectorRenderer").Parse(
	`{{define "numberField"}}<label class="field"><span>{{.Label}}</span><input type="number" name="{{.Name}}" value="{{.Value}}" step="1" min="0"></label>{{end}}` +
		`{{define "textField"}}<label class="field"><span>{{.Label}}</span><input type="text" name="{{.Name}}" value="{{.Value}}"></label>{{end}}` +
		`{{define "textAreaField"}}<label class="field"><span>{{.Label}}</span><textarea name="{{.Name}}">{{.Value}}</textarea></label>{{end}}` +
		`{{define "pricingRowFields"}}<fieldset class="pricing-row" data-row="{{.Index}}"><input type="text" name="itemName" value="{{.Name}}"><input type="text" name="itemDescription" value="{{.Description}}"><input type="number" name="itemPrice" value="{{.Price}}" step="0.01" min="0"><button type="button" class="remove-row" data-row="{{.Index}}">Remove</button></fieldset>{{end}}` +
		`{{define "scopeItemField"}}<fieldset class="scope-row" data-row="{{.Index}}"><input type="text" name="scopeItem" value="{{.Value}}"><button type="button" class="remove-row" data-row="{{.Index}}">Remove</button></fieldset>{{end}}` +
		`{{define "selectField"}}<label class="field"><span>{{.Label}}</span><select name="{{.Name}}">{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}</select></label>{{end}}` +
		`{{define "rangeField"}}<label class="field"><span>{{.Label}}</span><input type="range" name="{{.Name}}" value="{{.Value}}" min="{{.Min}}" max="{{.Max}}" step="1"></label>{{end}}` +
		`{{define "colorField"}}<label class="field"><span>{{.Label}}</span><input type="color" name="{{.Name}}" value="{{.Value}}"></label>{{end}}` +
		`{{define "toggleField"}}<label class="field toggle"><input type="checkbox" name="{{.Name}}" value="{{.On}}"{{if .Checked}} checked{{end}}><span>{{.Label}}</span></label>{{end}}`,
))

type fieldData struct {
	Label string
	Name  string
	Value string
}

type pricingFieldData struct {
	Index       int
	Name        string
	Description string
	Price       string
}

type scopeFieldData struct {
	Index int
	Value string
}

type selectOption struct {
	Value    string
	Selected bool
}

type selectFieldData struct {
	Label   string
	Name    string
	Options []selectOption
}

type rangeFieldData struct {
	Label string
	Name  string
	Value string
	Min   int
	Max   int
}

type toggleFieldData struct {
	Label   string
	Name    string
	On      string
	Checked bool
}

// InspectorRenderer composes the properties panel for the current selection.
type InspectorRenderer struct {
	ctx    *RenderContext
	logger *logging.ChanneledLogger
}

// NewInspectorRenderer creates an inspector renderer. logger may be nil.
func NewInspectorRenderer(ctx *RenderContext, logger *logging.ChanneledLogger) *InspectorRenderer {
	return &InspectorRenderer{ctx: ctx, logger: logger}
}

// Render returns the inspector HTML. With nothing selected it renders the
// empty state.
func (r *InspectorRenderer) Render() string {
	if r.ctx.SelectedID == "" {
		return `<div class="inspector empty"><p>Select an element to edit its properties</p></div>`
	}

	el, _, ok := r.ctx.Doc.FindElement(r.ctx.SelectedID)
	if !ok {
		return `<div class="inspector empty"><p>Select an element to edit its properties</p></div>`
	}

	body, ok := r.renderFields(el)
	if !ok {
		return ""
	}

	var html strings.Builder
	fmt.Fprintf(&html, `<div class="inspector" data-element-id="%s" data-kind="%s">`,
		template.HTMLEscapeString(el.ID), template.HTMLEscapeString(string(el.Kind)))
	html.WriteString(r.renderGeometryFields(el))
	html.WriteString(body)
	html.WriteString(r.renderArrangeControls())
	html.WriteString(`</div>`)
	return html.String()
}

func (r *InspectorRenderer) renderGeometryFields(el *proposal.Element) string {
	var buf bytes.Buffer
	buf.WriteString(`<fieldset class="geometry-fields"><legend>Position and Size</legend>`)
	fields := []fieldData{
		{Label: "X", Name: "x", Value: formatNumber(el.Geometry.X)},
		{Label: "Y", Name: "y", Value: formatNumber(el.Geometry.Y)},
		{Label: "Width", Name: "width", Value: formatNumber(el.Geometry.Width)},
		{Label: "Height", Name: "height", Value: formatNumber(el.Geometry.Height)},
	}
	for _, f := range fields {
		_ = inspectorTemplates.ExecuteTemplate(&buf, "numberField", f)
	}
	buf.WriteString(`</fieldset>`)
	return buf.String()
}

func (r *InspectorRenderer) renderArrangeControls() string {
	return `<fieldset class="arrange-controls"><legend>Arrange</legend>` +
		`<button type="button" name="bringForward">Bring Forward</button>` +
		`<button type="button" name="sendBackward">Send Backward</button>` +
		`<button type="button" name="duplicate">Duplicate</button>` +
		`<button type="button" name="delete" class="danger">Delete</button>` +
		`</fieldset>`
}

func (r *InspectorRenderer) renderFields(el *proposal.Element) (string, bool) {
	var buf bytes.Buffer

	switch content := el.Content.(type) {
	case *proposal.HeadingContent:
		_ = inspectorTemplates.ExecuteTemplate(&buf, "textField", fieldData{Label: "Heading", Name: "text", Value: content.Text})
		buf.WriteString(r.renderTextStyleFields(el))

	case *proposal.TextContent:
		_ = inspectorTemplates.ExecuteTemplate(&buf, "textAreaField", fieldData{Label: "Text", Name: "text", Value: content.Text})
		buf.WriteString(r.renderTextStyleFields(el))

	case *proposal.ImageContent:
		_ = inspectorTemplates.ExecuteTemplate(&buf, "textField", fieldData{Label: "Alt text", Name: "alt", Value: content.Alt})
		buf.WriteString(`<label class="field upload-field"><span>Image</span><input type="file" name="imageUpload" accept="image/*"></label>`)
		if content.Src != "" {
			_ = inspectorTemplates.ExecuteTemplate(&buf, "textField", fieldData{Label: "Source", Name: "src", Value: content.Src})
		}

	case *proposal.PricingTableContent:
		buf.WriteString(`<fieldset class="pricing-fields"><legend>Line Items</legend>`)
		for i, item := range content.Items {
			_ = inspectorTemplates.ExecuteTemplate(&buf, "pricingRowFields", pricingFieldData{
				Index:       i,
				Name:        item.Name,
				Description: item.Description,
				Price:       formatNumber(item.Price),
			})
		}
		buf.WriteString(`<button type="button" name="addRow">Add Item</button>`)
		_ = inspectorTemplates.ExecuteTemplate(&buf, "numberField", fieldData{Label: "Total", Name: "total", Value: formatNumber(content.Total)})
		buf.WriteString(`</fieldset>`)

	case *proposal.ScopeBlockContent:
		_ = inspectorTemplates.ExecuteTemplate(&buf, "textField", fieldData{Label: "Title", Name: "title", Value: content.Title})
		buf.WriteString(`<fieldset class="scope-fields"><legend>Scope Items</legend>`)
		for i, item := range content.Items {
			_ = inspectorTemplates.ExecuteTemplate(&buf, "scopeItemField", scopeFieldData{Index: i, Value: item})
		}
		buf.WriteString(`<button type="button" name="addRow">Add Item</button></fieldset>`)

	default:
		if r.logger != nil {
			r.logger.Editor().Error("inspector skipping element of unknown kind",
				"elementId", el.ID, "kind", string(el.Kind))
		}
		return "", false
	}

	return buf.String(), true
}

var inspectorFontFamilies = []string{
	"Georgia, serif",
	"Helvetica, sans-serif",
	"Times New Roman, serif",
	"Courier New, monospace",
}

var inspectorAlignments = []string{"left", "center", "right"}

// renderTextStyleFields emits the typography controls for Heading and Text
// elements. Every field writes its style key through the element patch; the
// values shown fall back to the kind defaults for keys the element has not
// set.
func (r *InspectorRenderer) renderTextStyleFields(el *proposal.Element) string {
	defaults := proposal.DefaultStyle(el.Kind)
	styleOf := func(key string) string {
		if v, ok := el.Style[key]; ok {
			return v
		}
		return defaults[key]
	}

	var buf bytes.Buffer
	buf.WriteString(`<fieldset class="style-fields"><legend>Typography</legend>`)
	_ = inspectorTemplates.ExecuteTemplate(&buf, "selectField", selectFieldData{
		Label: "Font", Name: "fontFamily", Options: selectOptions(inspectorFontFamilies, styleOf("fontFamily")),
	})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "rangeField", rangeFieldData{
		Label: "Size", Name: "fontSize", Value: styleOf("fontSize"), Min: 8, Max: 72,
	})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "colorField", fieldData{Label: "Color", Name: "color", Value: styleOf("color")})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "toggleField", toggleFieldData{
		Label: "Bold", Name: "fontWeight", On: "bold", Checked: styleOf("fontWeight") == "bold",
	})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "toggleField", toggleFieldData{
		Label: "Italic", Name: "fontStyle", On: "italic", Checked: styleOf("fontStyle") == "italic",
	})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "toggleField", toggleFieldData{
		Label: "Underline", Name: "textDecoration", On: "underline", Checked: styleOf("textDecoration") == "underline",
	})
	_ = inspectorTemplates.ExecuteTemplate(&buf, "selectField", selectFieldData{
		Label: "Alignment", Name: "textAlign", Options: selectOptions(inspectorAlignments, styleOf("textAlign")),
	})
	buf.WriteString(`</fieldset>`)
	return buf.String()
}

// selectOptions marks the current value selected; a value outside the preset
// list is appended so the dropdown never silently rewrites an element's style.
func selectOptions(values []string, current string) []selectOption {
	opts := make([]selectOption, len(values))
	seen := false
	for i, v := range values {
		opts[i] = selectOption{Value: v, Selected: v == current}
		if v == current {
			seen = true
		}
	}
	if current != "" && !seen {
		opts = append(opts, selectOption{Value: current, Selected: true})
	}
	return opts
}

func formatNumber(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
