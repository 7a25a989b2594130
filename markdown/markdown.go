// Package markdown renders post bodies from Markdown to HTML as a templ component.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Post content is written by the site author, so raw HTML inside the
// Markdown is passed through untouched.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderTo(w, content)
	})
}

// RenderTo writes the HTML representation of content to w.
func RenderTo(w io.Writer, content string) error {
	return md.Convert([]byte(content), w)
}

// Render returns the HTML representation of content.
func Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := RenderTo(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}
