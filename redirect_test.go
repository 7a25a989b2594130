package homepage

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestMakeHTTPS(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		uri      string
		expected string
	}{
		{"port rewritten", "example.com:8080", "/posts/x", "https://example.com:4343/posts/x"},
		{"query kept", "example.com:8080", "/search?q=go&page=2", "https://example.com:4343/search?q=go&page=2"},
		{"empty path", "example.com:8080", "", "https://example.com:4343/"},
		{"query without path", "example.com:8080", "?a=1", "https://example.com:4343/?a=1"},
		{"no port in host", "example.com", "/x", "https://example.com/x"},
		{"ipv6 host", "[::1]:8080", "/", "https://[::1]:4343/"},
		{"absolute form", "example.com:8080", "http://example.com:8080/a", "https://example.com:4343/a"},
		// Literal substitution: digits inside the host name change too.
		{"port digits in host name", "shop8080.example.com:8080", "/", "https://shop4343.example.com:4343/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MakeHTTPS(tt.host, mustURL(t, tt.uri), 8080, 4343)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestMakeHTTPSIsIdempotentOnHTTPS(t *testing.T) {
	for _, path := range []string{"/posts/x", "/", "/a/b/c"} {
		first, err := MakeHTTPS("example.com:4343", mustURL(t, "https://example.com:4343"+path), 8080, 4343)
		require.NoError(t, err)
		assert.Equal(t, "https", first.Scheme)
		assert.Equal(t, path, first.Path)

		second, err := MakeHTTPS(first.Host, first, 8080, 4343)
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	}

	got, err := MakeHTTPS("example.com:4343", mustURL(t, "https://example.com:4343"), 8080, 4343)
	require.NoError(t, err)
	assert.Equal(t, "/", got.Path)
}

func TestMakeHTTPSDoesNotModifyInput(t *testing.T) {
	in := mustURL(t, "/posts/x")
	_, err := MakeHTTPS("example.com:8080", in, 8080, 4343)
	require.NoError(t, err)
	assert.Equal(t, "/posts/x", in.String())
}

func TestMakeHTTPSConversionErrors(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		httpPort  uint16
		httpsPort uint16
	}{
		{"empty host", "", 8080, 4343},
		{"space in host", "exa mple.com:8080", 8080, 4343},
		{"userinfo", "user@example.com:8080", 8080, 4343},
		{"path in host", "example.com:8080/x", 8080, 4343},
		{"port only", ":8080", 8080, 4343},
		// "80" occurs twice in "8080", producing a port beyond 65535.
		{"port overflow after rewrite", "example.com:8080", 80, 65535},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MakeHTTPS(tt.host, mustURL(t, "/"), tt.httpPort, tt.httpsPort)
			var ce *ConversionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.host, ce.Host)
		})
	}
}

func TestRedirectListener(t *testing.T) {
	a, _ := newTestApp(t)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		req := httptest.NewRequest(method, "/posts/x", nil)
		req.Host = "example.com:8080"
		rec := httptest.NewRecorder()
		a.Redirect.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPermanentRedirect, rec.Code, method)
		assert.Equal(t, "https://example.com:4343/posts/x", rec.Header().Get("Location"), method)
	}
}

func TestRedirectListenerRoot(t *testing.T) {
	a, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "example.com:8080"
	rec := httptest.NewRecorder()
	a.Redirect.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "https://example.com:4343/", rec.Header().Get("Location"))
}

func TestRedirectListenerBadHost(t *testing.T) {
	a, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/posts/x", nil)
	req.Host = "bad host:8080"
	rec := httptest.NewRecorder()
	a.Redirect.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request can not be redirected to HTTPS", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRedirectListenerNeverServesContent(t *testing.T) {
	a, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/assets/style.css", nil)
	req.Host = "example.com:8080"
	rec := httptest.NewRecorder()
	a.Redirect.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.NotContains(t, rec.Body.String(), "margin")
}
