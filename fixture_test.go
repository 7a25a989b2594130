package homepage

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	firstPostMetadata = `title = "Hello"
author = "A"
date_published = 2024-01-01
date_updated = 2024-01-02
post_type = "article"
synopsis = "The first post"
`
	defaultPostMetadata = `title = "Nothing here yet"
author = "Site Owner"
date_published = 2023-06-01T09:30:00Z
date_updated = 2023-06-02
post_type = "page"
synopsis = "Fallback post"
`
	notFoundPNG = "\x89PNG\r\n\x1a\nnot-found"
)

// writeSite lays out a complete site under a temporary root and returns it.
func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"posts/default/metadata.toml":       defaultPostMetadata,
		"posts/default/content.md":          "Default *body*",
		"posts/my-first-post/metadata.toml": firstPostMetadata,
		"posts/my-first-post/content.md":    "# Hi",
		"posts/no-content/metadata.toml":    firstPostMetadata,
		"posts/bad-metadata/metadata.toml":  "title = \"x\"\n",
		"posts/bad-metadata/content.md":     "body",
		"posts/empty/.keep":                 "",
		"assets/style.css":                  "body { margin: 0; }",
		"assets/img/not-found.png":          notFoundPNG,
		"assets/img/cat.jpg":                "jpeg-bytes",
		"assets/favicon/favicon.ico":        "ico-bytes",
		"assets/favicon/icon-32.png":        "png-bytes",
		"static/index.html":                 "<!DOCTYPE html><html><body>root</body></html>",
		"static/site.webmanifest":           `{"name":"Rice Co."}`,
		"certs/cert.pem":                    "cert",
		"certs/key.pem":                     "key",
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func quietLogger(t *testing.T) Option {
	t.Helper()
	l, err := NewLogger("off", io.Discard)
	require.NoError(t, err)
	return WithLogger(l)
}

func newTestApp(t *testing.T, opts ...Option) (*App, string) {
	t.Helper()
	root := writeSite(t)
	cfg := SiteConfig{
		Root:     root,
		CertFile: filepath.Join(root, "certs", "cert.pem"),
		KeyFile:  filepath.Join(root, "certs", "key.pem"),
	}
	return New(cfg, append([]Option{quietLogger(t)}, opts...)...), root
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
