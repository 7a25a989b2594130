package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPostRendersMetadataAndContent(t *testing.T) {
	got := render(t, Post(SiteConfig{Name: "Rice Co."}, RenderedPost{
		Title:         "Hello",
		Author:        "A",
		DatePublished: "2024-01-01",
		DateUpdated:   "2024-01-02",
		PostType:      "Short Note",
		Synopsis:      "<b>First</b>   post",
		Content:       "<h1>Hi</h1>",
	}))

	assert.Contains(t, got, "<!DOCTYPE html>")
	assert.Contains(t, got, "<title>Hello | Rice Co.</title>")
	assert.Contains(t, got, `<h1 class="post-title">Hello</h1>`)
	assert.Contains(t, got, `<span class="post-author">A</span>`)
	assert.Contains(t, got, `<time datetime="2024-01-01">2024-01-01</time>`)
	assert.Contains(t, got, `<time datetime="2024-01-02">2024-01-02</time>`)
	assert.Contains(t, got, `<section class="post-content"><h1>Hi</h1></section>`)
	assert.Contains(t, got, `<meta name="description" content="First post">`)
	assert.Contains(t, got, `<article class="post post-short-note">`)
	assert.Contains(t, got, `<meta property="og:type" content="article">`)
}

func TestPostEscapesMetadata(t *testing.T) {
	got := render(t, Post(SiteConfig{}, RenderedPost{Title: `<script>x</script>`, Author: `"me"`}))
	assert.NotContains(t, got, "<script>x</script>")
	assert.Contains(t, got, "&lt;script&gt;x&lt;/script&gt;")
	assert.Contains(t, got, "&#34;me&#34;")
}

func TestPageEscapesContent(t *testing.T) {
	got := render(t, Page(SiteConfig{Name: "Rice Co."}, "Rice Co.", "QR-ID: <b>, IP: 203.0.113.5"))
	assert.Contains(t, got, "<title>Rice Co.</title>")
	assert.Contains(t, got, `<p class="page-content">QR-ID: &lt;b&gt;, IP: 203.0.113.5</p>`)
	assert.Contains(t, got, `<link rel="stylesheet" href="/assets/style.css">`)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"<p>para</p>", "para"},
		{"a &amp; b", "a & b"},
		{"  spread\n\tout  ", "spread out"},
		{`<script>alert(1)</script>ok`, "ok"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PlainText(tt.input), "PlainText(%q)", tt.input)
	}
}

func TestPostClass(t *testing.T) {
	assert.Equal(t, "post", PostClass(""))
	assert.Equal(t, "post post-article", PostClass("Article"))
	assert.Equal(t, "post post-long-read", PostClass(" long  read! "))
}

func TestPostJsonLD(t *testing.T) {
	got := render(t, Post(SiteConfig{Name: "Rice Co."}, RenderedPost{
		Title:         "</script><b>",
		Author:        "A",
		DatePublished: "2024-01-01",
		DateUpdated:   "2024-01-02",
	}))
	assert.Contains(t, got, `<script type="application/ld+json">`)
	assert.Contains(t, got, `"datePublished":"2024-01-01"`)
	assert.Contains(t, got, `"headline":"\u003c/script\u003e\u003cb\u003e"`)
	assert.NotContains(t, got, "</script><b>")
}

func TestPageHasNoJsonLD(t *testing.T) {
	got := render(t, Page(SiteConfig{Name: "Rice Co."}, "Rice Co.", "x"))
	assert.NotContains(t, got, "application/ld+json")
}

func TestLayoutHead(t *testing.T) {
	got := render(t, Layout(SiteConfig{Name: "Rice Co."}, PageMeta{Title: "About"}, templ.Raw("<main>body</main>")))

	assert.Contains(t, got, "<title>About | Rice Co.</title>")
	assert.Contains(t, got, `<meta property="og:type" content="website">`)
	assert.NotContains(t, got, `name="description"`)
	assert.Contains(t, got, `<header class="site-header"><a href="/">Rice Co.</a></header><main>body</main></body></html>`)
}
