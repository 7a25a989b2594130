// Package homepage is a personal-site content server built with Go and Echo.
// It serves Markdown blog posts rendered through templ templates, static
// assets with MIME detection and fallbacks, a per-visitor QR info page, and
// a second plaintext listener that redirects everything to HTTPS.
//
// Both listeners are built from one SiteConfig and share nothing else.
package homepage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/riceco/homepage/views"
)

// App wires the resolvers, the TLS content listener and the plaintext
// redirect listener together.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo // TLS content listener
	Redirect *echo.Echo // plaintext listener
	Logger   echo.Logger

	Posts      *PostResolver
	QR         *QRResponder
	Images     AssetFamily
	Favicons   AssetFamily
	Stylesheet AssetFamily

	registry *prometheus.Registry
}

// New creates an App with the given configuration. Routes and middleware
// are registered immediately; nothing touches the network until Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Redirect: echo.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		l := log.New("homepage")
		l.SetHeader(logHeader)
		a.Logger = l
	}

	site := views.SiteConfig{Name: cfg.Name}
	assets := os.DirFS(cfg.AssetsDir)
	a.Posts = &PostResolver{FS: os.DirFS(cfg.PostsDir), Site: site, Logger: a.Logger}
	a.QR = &QRResponder{Site: site, Logger: a.Logger}
	a.Images = AssetFamily{
		Name:     "image",
		FS:       os.DirFS(filepath.Join(cfg.AssetsDir, ImagesSubdir)),
		Fallback: NotFoundImageFile,
	}
	a.Favicons = AssetFamily{
		Name: "favicon",
		FS:   os.DirFS(filepath.Join(cfg.AssetsDir, FaviconsSubdir)),
	}
	a.Stylesheet = AssetFamily{
		Name:     "stylesheet",
		FS:       assets,
		MIMEType: "text/css; charset=utf-8",
	}

	a.setupMiddleware()
	a.setupRoutes()
	a.setupRedirect()
	return a
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleRoot)
	e.GET("/site.webmanifest", a.handleManifest)
	e.GET("/assets/style.css", a.handleStylesheet)
	e.GET("/assets/img/:name", a.handleImage)
	e.GET("/assets/favicon/:name", a.handleFavicon)
	e.GET("/favicon.ico", a.handleFaviconICO)
	e.GET("/posts/:post_id", a.handlePost)
	e.GET("/qr/:qr_id", a.handleQR)
	e.GET("/qr", a.handleQR)

	if a.Config.MetricsEnabled {
		a.setupMetrics()
	}
}

// Start validates the startup invariants, then runs both listeners until
// ctx is cancelled or either listener fails. Either way both are shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	cert, err := tls.LoadX509KeyPair(a.Config.CertFile, a.Config.KeyFile)
	if err != nil {
		return fmt.Errorf("%w: load certificate: %w", ErrFatal, err)
	}

	content := &http.Server{
		Addr:              ":" + strconv.Itoa(int(a.Config.HTTPSPort)),
		Handler:           a.Echo,
		TLSConfig:         &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12},
		ReadHeaderTimeout: 10 * time.Second,
	}
	redirect := &http.Server{
		Addr:              ":" + strconv.Itoa(int(a.Config.HTTPPort)),
		Handler:           a.Redirect,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Infof("listening on %s (https)", content.Addr)
		if err := content.ListenAndServeTLS("", ""); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("https listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.Logger.Infof("listening on %s for https redirect", redirect.Addr)
		if err := redirect.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("redirect listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		a.Logger.Infof("shutting down")
		return errors.Join(content.Shutdown(shutdownCtx), redirect.Shutdown(shutdownCtx))
	})
	return g.Wait()
}
