package homepage

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (a *App) setupMiddleware() {
	e := a.Echo
	a.setupCommon(e)

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return isAssetPath(c.Request().URL.Path)
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'; media-src 'self' https:",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(cacheControlMiddleware)
}

// setupCommon installs what both listeners share: direct peer addresses,
// uniform error responses, request ids, request logging and panic recovery.
func (a *App) setupCommon(e *echo.Echo) {
	e.HideBanner = true
	e.HidePort = true
	e.Logger = a.Logger
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Logger.Infof("%s %s %s -> %d (%s) [%s]", v.RemoteIP, v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	e.Use(middleware.Recover())
}

func (a *App) setupRedirect() {
	e := a.Redirect
	a.setupCommon(e)
	e.Any("/", a.handleRedirect)
	e.Any("/*", a.handleRedirect)
}

func isAssetPath(path string) bool {
	return strings.HasPrefix(path, "/assets/") || path == "/favicon.ico"
}

// cacheControlMiddleware sets Cache-Control for everything except assets,
// which set their own header once the file has been resolved.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case isAssetPath(path):
		case path == "/qr" || strings.HasPrefix(path, "/qr/") || path == "/metrics":
			c.Response().Header().Set("Cache-Control", "no-store")
		case path == "/site.webmanifest":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}
