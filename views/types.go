package views

// SiteConfig holds the site-wide values every page template reads.
type SiteConfig struct {
	Name string // shown in <title> and the page header
}

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	OGType      string // "website" or "article"
	JSONLD      string // optional structured data, written unescaped
}

// RenderedPost is a post's decoded metadata combined with its rendered body.
// Dates are already formatted as YYYY-MM-DD and Content is trusted HTML.
type RenderedPost struct {
	Title         string
	Author        string
	DatePublished string
	DateUpdated   string
	PostType      string
	Synopsis      string
	Content       string
}
