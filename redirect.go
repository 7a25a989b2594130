package homepage

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ConversionError reports a request whose URI can not be rebuilt as HTTPS.
type ConversionError struct {
	Host string
	URI  string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %q on host %q to https: %v", e.URI, e.Host, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// MakeHTTPS rebuilds uri as an absolute https URI on host. Every occurrence
// of the decimal httpPort inside host is replaced with httpsPort; this is a
// plain text substitution, so a host name containing those digits is
// rewritten too. An empty path becomes "/".
func MakeHTTPS(host string, uri *url.URL, httpPort, httpsPort uint16) (*url.URL, error) {
	u := *uri
	u.Scheme = "https"
	u.Opaque = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	httpsHost := strings.ReplaceAll(host,
		strconv.FormatUint(uint64(httpPort), 10),
		strconv.FormatUint(uint64(httpsPort), 10))
	if err := checkAuthority(httpsHost); err != nil {
		return nil, &ConversionError{Host: host, URI: uri.String(), Err: err}
	}
	u.Host = httpsHost

	out, err := url.Parse(u.String())
	if err != nil {
		return nil, &ConversionError{Host: host, URI: uri.String(), Err: err}
	}
	return out, nil
}

// checkAuthority accepts host or host:port with a 16-bit port and nothing else.
func checkAuthority(authority string) error {
	if authority == "" {
		return errors.New("empty authority")
	}
	a, err := url.Parse("//" + authority)
	if err != nil {
		return err
	}
	if a.User != nil || a.Host != authority || a.Path != "" || a.RawQuery != "" || a.Fragment != "" {
		return fmt.Errorf("invalid authority %q", authority)
	}
	if a.Hostname() == "" {
		return fmt.Errorf("authority %q has no host", authority)
	}
	if p := a.Port(); p != "" {
		if _, err := strconv.ParseUint(p, 10, 16); err != nil {
			return fmt.Errorf("invalid port in authority %q", authority)
		}
	}
	return nil
}

// handleRedirect answers every request on the plaintext listener.
func (a *App) handleRedirect(c echo.Context) error {
	req := c.Request()
	target, err := MakeHTTPS(req.Host, req.URL, a.Config.HTTPPort, a.Config.HTTPSPort)
	if err != nil {
		a.Logger.Warnf("failed to convert URI to HTTPS: %v", err)
		return &RequestError{Kind: KindConversion, Message: "Request can not be redirected to HTTPS", Err: err}
	}
	a.Logger.Infof("redirecting %s%s to %s", req.Host, req.URL.RequestURI(), target)
	return c.Redirect(http.StatusPermanentRedirect, target.String())
}
