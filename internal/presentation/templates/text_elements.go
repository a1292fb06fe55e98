package templates

import (
	"bytes"
	"html/template"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
)

var textTemplates = template.Must(template.New("textRenderer").Parse(
	`{{define "heading"}}<h1 class="element-content heading-text">{{.}}</h1>{{end}}` +
		`{{define "headingEdit"}}<input class="element-content inline-edit heading-edit" type="text" value="{{.}}" autofocus>{{end}}` +
		`{{define "text"}}<p class="element-content body-text">{{.}}</p>{{end}}` +
		`{{define "textEdit"}}<textarea class="element-content inline-edit text-edit" autofocus>{{.}}</textarea>{{end}}`,
))

// renderHeading renders a Heading element. While the element is in inline
// edit mode, the uncommitted buffer is shown in an input instead of the
// committed text.
func renderHeading(el *proposal.Element, editing bool, buffer string) string {
	content, ok := el.Content.(*proposal.HeadingContent)
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	if editing {
		_ = textTemplates.ExecuteTemplate(&buf, "headingEdit", buffer)
	} else {
		_ = textTemplates.ExecuteTemplate(&buf, "heading", content.Text)
	}
	return buf.String()
}

// renderText renders a Text element, with the same inline-edit treatment as
// headings but in a textarea.
func renderText(el *proposal.Element, editing bool, buffer string) string {
	content, ok := el.Content.(*proposal.TextContent)
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	if editing {
		_ = textTemplates.ExecuteTemplate(&buf, "textEdit", buffer)
	} else {
		_ = textTemplates.ExecuteTemplate(&buf, "text", content.Text)
	}
	return buf.String()
}
