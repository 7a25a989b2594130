package homepage

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"

	"github.com/labstack/echo/v4"

	"github.com/riceco/homepage/views"
)

// DefaultQRID is used when /qr is requested without an id.
const DefaultQRID = "DEFAULT"

// QRContext is the per-request data shown on the QR info page.
type QRContext struct {
	ID       string
	ClientIP netip.Addr
}

func (q QRContext) String() string {
	return fmt.Sprintf("QR-ID: %s, IP: %s", q.ID, q.ClientIP)
}

// QRResponder renders the QR info page. It keeps no state between requests.
type QRResponder struct {
	Site   views.SiteConfig
	Logger echo.Logger
}

// Respond renders the info page for id as seen from clientIP.
func (q *QRResponder) Respond(ctx context.Context, id string, clientIP netip.Addr) (string, error) {
	if id == "" {
		id = DefaultQRID
	}
	qc := QRContext{ID: id, ClientIP: clientIP}
	q.Logger.Debugf("qr context: %s", qc)
	return renderHTML(ctx, views.Page(q.Site, q.Site.Name, qc.String()))
}

// peerAddr returns the transport-level address of the client. The content
// listener uses echo.ExtractIPDirect, so RealIP never reads proxy headers.
func peerAddr(c echo.Context) netip.Addr {
	addr, err := netip.ParseAddr(c.RealIP())
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

func (a *App) handleQR(c echo.Context) error {
	id := c.Param("qr_id")
	a.Logger.Infof("QR code requested with id %s", id)
	page, err := a.QR.Respond(c.Request().Context(), id, peerAddr(c))
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, page)
}
