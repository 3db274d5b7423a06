// Package markdown renders entry text to sanitized HTML for display.
// The ordering core never calls it: entry content stays opaque there.
package markdown

import (
	"bytes"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	// raw HTML passes through goldmark and is filtered by bluemonday
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to HTML and strips anything the UGC policy
// does not allow.
func (r *Renderer) Render(text domain.EntryText) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
