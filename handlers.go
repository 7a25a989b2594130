package homepage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

func (a *App) handleRoot(c echo.Context) error {
	a.Logger.Infof("root requested")
	page, err := os.ReadFile(filepath.Join(a.Config.StaticDir, RootPageFile))
	if err != nil {
		return fmt.Errorf("read root page: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func (a *App) handleManifest(c echo.Context) error {
	manifest, err := os.ReadFile(filepath.Join(a.Config.StaticDir, ManifestFile))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	return c.Blob(http.StatusOK, MIMEType(ManifestFile), manifest)
}

// httpErrorHandler turns every handler error into a plain-text response.
// Resolver errors carry their own status and message; anything else is a
// server fault and is logged but not described to the client.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)

	var re *RequestError
	if errors.As(err, &re) {
		if re.Err != nil {
			a.Logger.Debugf("request %s: %v", rid, err)
		}
		_ = c.String(re.Status(), re.Message)
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if m, ok := he.Message.(string); ok && code < 500 {
			msg = m
		}
	}
	if code >= 500 {
		a.Logger.Errorf("request %s: server error: %v", rid, err)
	}
	_ = c.String(code, msg)
}
