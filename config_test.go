package homepage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	var c SiteConfig
	c.setDefaults()

	assert.Equal(t, "Rice Co.", c.Name)
	assert.Equal(t, uint16(8080), c.HTTPPort)
	assert.Equal(t, uint16(4343), c.HTTPSPort)
	assert.Equal(t, "posts", c.PostsDir)
	assert.Equal(t, "assets", c.AssetsDir)
	assert.Equal(t, "static", c.StaticDir)
	assert.Equal(t, filepath.Join("certs", "cert.pem"), c.CertFile)
	assert.Equal(t, filepath.Join("certs", "key.pem"), c.KeyFile)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestConfigDefaultsKeepExplicitValues(t *testing.T) {
	c := SiteConfig{Name: "Elsewhere", HTTPPort: 80, HTTPSPort: 443, Root: "/srv/site", PostsDir: "/data/posts"}
	c.setDefaults()

	assert.Equal(t, "Elsewhere", c.Name)
	assert.Equal(t, uint16(80), c.HTTPPort)
	assert.Equal(t, uint16(443), c.HTTPSPort)
	assert.Equal(t, "/data/posts", c.PostsDir)
	assert.Equal(t, filepath.Join("/srv/site", "assets"), c.AssetsDir)
}

func fixtureConfig(t *testing.T) SiteConfig {
	t.Helper()
	root := writeSite(t)
	c := SiteConfig{
		Root:     root,
		CertFile: filepath.Join(root, "certs", "cert.pem"),
		KeyFile:  filepath.Join(root, "certs", "key.pem"),
	}
	c.setDefaults()
	return c
}

func TestValidateCompleteSite(t *testing.T) {
	c := fixtureConfig(t)
	assert.NoError(t, c.Validate())
}

func TestValidateMissingFiles(t *testing.T) {
	tests := []string{
		"static/index.html",
		"static/site.webmanifest",
		"assets/style.css",
		"assets/img/not-found.png",
		"posts/default/metadata.toml",
		"posts/default/content.md",
		"certs/cert.pem",
		"certs/key.pem",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			c := fixtureConfig(t)
			path := filepath.Join(c.Root, filepath.FromSlash(name))
			require.NoError(t, os.Remove(path))

			err := c.Validate()
			require.ErrorIs(t, err, ErrFatal)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestValidateRequiredFileIsDirectory(t *testing.T) {
	c := fixtureConfig(t)
	path := filepath.Join(c.StaticDir, RootPageFile)
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	err := c.Validate()
	require.ErrorIs(t, err, ErrFatal)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := SiteConfig{Root: t.TempDir(), HTTPPort: 9000, HTTPSPort: 9000}
	c.setDefaults()

	err := c.Validate()
	require.ErrorIs(t, err, ErrFatal)
	assert.Contains(t, err.Error(), "ports are both 9000")
	for _, name := range c.requiredFiles() {
		assert.Contains(t, err.Error(), name)
	}
}
