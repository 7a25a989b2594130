package homepage

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/riceco/homepage/markdown"
	"github.com/riceco/homepage/metadata"
	"github.com/riceco/homepage/views"
)

// Post directory layout.
const (
	DefaultPostID = "default"
	MetadataFile  = "metadata.toml"
	ContentFile   = "content.md"
)

// PostResolver maps a post id to a rendered page. Every call re-reads the
// post from disk.
type PostResolver struct {
	FS     fs.FS
	Site   views.SiteConfig
	Logger echo.Logger
}

// Dir returns the directory that serves postID: the post's own directory
// when it exists, DefaultPostID otherwise.
func (r *PostResolver) Dir(postID string) string {
	if postID == "" || postID == "." || strings.ContainsAny(postID, `/\`) || !fs.ValidPath(postID) {
		return DefaultPostID
	}
	info, err := fs.Stat(r.FS, postID)
	if err != nil || !info.IsDir() {
		return DefaultPostID
	}
	return postID
}

// Resolve loads, decodes and renders the post for postID.
func (r *PostResolver) Resolve(ctx context.Context, postID string) (string, error) {
	dir := r.Dir(postID)
	if dir != postID {
		r.Logger.Debugf("post %q not found, using %s", postID, dir)
	}

	metaPath := path.Join(dir, MetadataFile)
	if !isFile(r.FS, metaPath) {
		return "", BadRequest("No post metadata found")
	}
	raw, err := fs.ReadFile(r.FS, metaPath)
	if err != nil {
		return "", &RequestError{Kind: KindBadRequest, Message: "Metadata can not be read", Err: err}
	}
	meta, err := metadata.Decode(raw)
	if err != nil {
		r.Logger.Warnf("post %s: %v", dir, err)
		return "", &RequestError{Kind: KindBadRequest, Message: "Metadata can not be parsed", Err: err}
	}
	r.Logger.Debugf("post %s metadata: %+v", dir, meta)

	contentPath := path.Join(dir, ContentFile)
	if !isFile(r.FS, contentPath) {
		return "", BadRequest("No post content found")
	}
	content, err := fs.ReadFile(r.FS, contentPath)
	if err != nil {
		return "", &RequestError{Kind: KindBadRequest, Message: "Content can not be read", Err: err}
	}

	body, err := markdown.Render(string(content))
	if err != nil {
		return "", fmt.Errorf("render post %s content: %w", dir, err)
	}
	post := views.RenderedPost{
		Title:         meta.Title,
		Author:        meta.Author,
		DatePublished: meta.DatePublished.String(),
		DateUpdated:   meta.DateUpdated.String(),
		PostType:      meta.PostType,
		Synopsis:      meta.Synopsis,
		Content:       body,
	}
	page, err := renderHTML(ctx, views.Post(r.Site, post))
	if err != nil {
		return "", fmt.Errorf("render post %s: %w", dir, err)
	}
	return page, nil
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}

func (a *App) handlePost(c echo.Context) error {
	postID := c.Param("post_id")
	a.Logger.Infof("blog post requested with id %s", postID)
	page, err := a.Posts.Resolve(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, page)
}
