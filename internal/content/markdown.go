package content

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer wraps goldmark. Lesson markdown is a trusted-author surface, so
// output is embedded as-is; there is no extra sanitization pass.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Render converts markdown to HTML. Empty input and conversion failures both
// yield empty markup; a lesson page must render even when its body cannot.
func (r *Renderer) Render(src string) template.HTML {
	if src == "" {
		return template.HTML("")
	}

	var buf bytes.Buffer

	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("")
	}

	return template.HTML(buf.String())
}
