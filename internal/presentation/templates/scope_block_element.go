package templates

import (
	"bytes"
	"html/template"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
)

var scopeTemplates = template.Must(template.New("scopeRenderer").Parse(
	`{{define "scopeTitle"}}<h3 class="scope-title">{{.}}</h3>{{end}}` +
		`{{define "scopeItem"}}<li class="scope-item">{{.}}</li>{{end}}`,
))

// renderScopeBlock renders a ScopeBlock element as a titled checklist. An
// empty item list shows a placeholder line so the block stays visible.
func renderScopeBlock(el *proposal.Element) string {
	content, ok := el.Content.(*proposal.ScopeBlockContent)
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="element-content scope-block">`)
	_ = scopeTemplates.ExecuteTemplate(&buf, "scopeTitle", content.Title)

	if len(content.Items) == 0 {
		buf.WriteString(`<p class="scope-empty">No items yet</p>`)
	} else {
		buf.WriteString(`<ul class="scope-items">`)
		for _, item := range content.Items {
			_ = scopeTemplates.ExecuteTemplate(&buf, "scopeItem", item)
		}
		buf.WriteString(`</ul>`)
	}

	buf.WriteString(`</div>`)
	return buf.String()
}
