package homepage

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

const assetCacheControl = "max-age=3600, must-revalidate"

func init() {
	// Types missing from the built-in table on minimal systems.
	for ext, typ := range map[string]string{
		".ico":         "image/x-icon",
		".webmanifest": "application/manifest+json",
		".avif":        "image/avif",
		".webp":        "image/webp",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// AssetDescriptor identifies the file chosen to answer an asset request.
type AssetDescriptor struct {
	Path        string // path inside the family's filesystem
	MIMEType    string
	DisplayName string // base name, sent as Content-Disposition
}

// Asset is a resolved, opened asset. The caller must Close it.
type Asset struct {
	AssetDescriptor
	File fs.File
}

// Close releases the underlying file.
func (a *Asset) Close() error { return a.File.Close() }

// AssetFamily is a set of assets sharing a root directory and fallback rule.
type AssetFamily struct {
	Name     string
	FS       fs.FS
	Fallback string // served when the requested file is absent; "" means 404
	MIMEType string // fixed type; "" means detect from the extension
}

// MIMEType returns the content type for name's extension, or "" when it
// can not be determined.
func MIMEType(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// validAssetName reports whether name is a single file name with no
// directory components.
func validAssetName(name string) bool {
	return name != "" && name != "." && !strings.ContainsAny(name, `/\`) && fs.ValidPath(name)
}

func (f AssetFamily) mimeFor(name string) string {
	if f.MIMEType != "" {
		return f.MIMEType
	}
	return MIMEType(name)
}

// Open resolves name within the family. The content type is settled before
// the filesystem is touched: an undeterminable type or an invalid name
// fails without any I/O. A missing file falls back to f.Fallback when set.
func (f AssetFamily) Open(name string) (*Asset, error) {
	typ := f.mimeFor(name)
	if typ == "" {
		return nil, BadRequest("MIME type undetermined")
	}
	if !validAssetName(name) {
		return nil, BadRequest("Invalid asset name")
	}

	asset, err := f.open(name, typ)
	if err == nil {
		return asset, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s asset %s: %w", f.Name, name, err)
	}
	if f.Fallback == "" {
		return nil, NotFound("Asset not found", err)
	}

	asset, err = f.open(f.Fallback, f.mimeFor(f.Fallback))
	if err != nil {
		return nil, NotFound("Asset not found", err)
	}
	return asset, nil
}

func (f AssetFamily) open(name, typ string) (*Asset, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &Asset{
		AssetDescriptor: AssetDescriptor{
			Path:        name,
			MIMEType:    typ,
			DisplayName: path.Base(name),
		},
		File: file,
	}, nil
}

// serveAsset streams the resolved asset. The file is closed when the
// handler returns, including when the client goes away mid-copy.
func (a *App) serveAsset(c echo.Context, family AssetFamily, name string) error {
	a.Logger.Infof("%s asset requested: %s", family.Name, name)
	asset, err := family.Open(name)
	if err != nil {
		return err
	}
	defer asset.Close()

	if asset.Path != name {
		a.Logger.Debugf("%s asset %s missing, serving %s", family.Name, name, asset.Path)
	}
	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, asset.DisplayName)
	h.Set("Cache-Control", assetCacheControl)
	return c.Stream(http.StatusOK, asset.MIMEType, asset.File)
}

func (a *App) handleStylesheet(c echo.Context) error {
	return a.serveAsset(c, a.Stylesheet, StylesheetFile)
}

func (a *App) handleImage(c echo.Context) error {
	return a.serveAsset(c, a.Images, c.Param("name"))
}

func (a *App) handleFavicon(c echo.Context) error {
	return a.serveAsset(c, a.Favicons, c.Param("name"))
}

func (a *App) handleFaviconICO(c echo.Context) error {
	return a.serveAsset(c, a.Favicons, FaviconFile)
}
