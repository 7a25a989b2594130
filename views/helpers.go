package views

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and collapses whitespace, for use in
// attributes such as <meta name="description">. The result is unescaped
// text; callers still escape it on output.
func PlainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}

// PostClass returns the CSS classes for a post's <article>, keyed on its type.
func PostClass(postType string) string {
	base := "post"
	var b strings.Builder
	prev := false
	for _, r := range strings.ToLower(strings.TrimSpace(postType)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	if t := strings.TrimRight(b.String(), "-"); t != "" {
		base += " post-" + t
	}
	return base
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site SiteConfig, p RenderedPost) string {
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      p.Title,
		"description":   PlainText(p.Synopsis),
		"datePublished": p.DatePublished,
		"dateModified":  p.DateUpdated,
		"author": map[string]string{
			"@type": "Person",
			"name":  p.Author,
		},
	}
	if site.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func pageTitle(site SiteConfig, meta PageMeta) string {
	if site.Name != "" && meta.Title != site.Name {
		return meta.Title + " | " + site.Name
	}
	return meta.Title
}

func ogType(meta PageMeta) string {
	if meta.OGType == "" {
		return "website"
	}
	return meta.OGType
}

func postMeta(site SiteConfig, p RenderedPost) PageMeta {
	return PageMeta{
		Title:       p.Title,
		Description: PlainText(p.Synopsis),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(site, p),
	}
}

// jsonLDScript wraps data in a script element. json.Marshal escapes '<',
// so data can not close the element early.
func jsonLDScript(data string) string {
	return `<script type="application/ld+json">` + data + `</script>`
}
