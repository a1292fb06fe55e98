package templates

import (
	"bytes"
	"html/template"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
)

var imageTemplates = template.Must(template.New("imageRenderer").Parse(
	`{{define "image"}}<img class="element-content element-image" src="{{.Src}}" alt="{{.Alt}}">{{end}}` +
		`{{define "imagePlaceholder"}}<div class="element-content image-placeholder">{{.}}</div>{{end}}`,
))

type imageData struct {
	Src string
	Alt string
}

// renderImage renders an Image element. An empty src or a failed load shows
// a placeholder box instead of a broken image.
func renderImage(el *proposal.Element) string {
	content, ok := el.Content.(*proposal.ImageContent)
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	switch {
	case content.Src == "":
		_ = imageTemplates.ExecuteTemplate(&buf, "imagePlaceholder", "Drop an image here")
	case content.LoadFailed:
		_ = imageTemplates.ExecuteTemplate(&buf, "imagePlaceholder", "Image unavailable")
	default:
		_ = imageTemplates.ExecuteTemplate(&buf, "image", imageData{Src: content.Src, Alt: content.Alt})
	}
	return buf.String()
}
