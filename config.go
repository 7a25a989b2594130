package homepage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Fixed names inside the content directories.
const (
	RootPageFile      = "index.html"
	ManifestFile      = "site.webmanifest"
	StylesheetFile    = "style.css"
	ImagesSubdir      = "img"
	FaviconsSubdir    = "favicon"
	NotFoundImageFile = "not-found.png"
	FaviconFile       = "favicon.ico"
)

// SiteConfig holds all configuration for the site. It is read by both
// listeners and never modified after New.
type SiteConfig struct {
	Name string // Site name, also the QR page title (default "Rice Co.")

	HTTPPort  uint16 // Plaintext redirect listener (default 8080)
	HTTPSPort uint16 // TLS content listener (default 4343)

	Root      string // Base directory for the three content dirs (default ".")
	PostsDir  string // default <Root>/posts
	AssetsDir string // default <Root>/assets
	StaticDir string // default <Root>/static

	CertFile string // PEM certificate (default "certs/cert.pem")
	KeyFile  string // PEM private key (default "certs/key.pem")

	MetricsEnabled  bool          // Serve /metrics on the TLS listener
	ShutdownTimeout time.Duration // Graceful shutdown budget (default 10s)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Rice Co."
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.HTTPSPort == 0 {
		c.HTTPSPort = 4343
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.PostsDir == "" {
		c.PostsDir = filepath.Join(c.Root, "posts")
	}
	if c.AssetsDir == "" {
		c.AssetsDir = filepath.Join(c.Root, "assets")
	}
	if c.StaticDir == "" {
		c.StaticDir = filepath.Join(c.Root, "static")
	}
	if c.CertFile == "" {
		c.CertFile = filepath.Join("certs", "cert.pem")
	}
	if c.KeyFile == "" {
		c.KeyFile = filepath.Join("certs", "key.pem")
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// requiredFiles lists every file whose absence makes the site unservable.
func (c *SiteConfig) requiredFiles() []string {
	return []string{
		filepath.Join(c.StaticDir, RootPageFile),
		filepath.Join(c.StaticDir, ManifestFile),
		filepath.Join(c.AssetsDir, StylesheetFile),
		filepath.Join(c.AssetsDir, ImagesSubdir, NotFoundImageFile),
		filepath.Join(c.PostsDir, DefaultPostID, MetadataFile),
		filepath.Join(c.PostsDir, DefaultPostID, ContentFile),
		c.CertFile,
		c.KeyFile,
	}
}

// Validate checks the startup invariants. Every problem is reported, and
// the returned error wraps ErrFatal.
func (c *SiteConfig) Validate() error {
	var errs []error
	if c.HTTPPort == c.HTTPSPort {
		errs = append(errs, fmt.Errorf("http and https ports are both %d", c.HTTPPort))
	}
	for _, name := range c.requiredFiles() {
		info, err := os.Stat(name)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("required file %s: %w", name, err))
		case info.IsDir():
			errs = append(errs, fmt.Errorf("required file %s is a directory", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrFatal, errors.Join(errs...))
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger shared by both listeners and all resolvers.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithRegistry sets the Prometheus registry used when metrics are enabled.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}
