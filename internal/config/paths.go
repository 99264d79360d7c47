package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/sitemaint/internal/messages"
)

const (
	// FileName is the optional per-site config file, looked up in the site root.
	FileName = ".sitemaint.toml"
	// SiteRootEnvVar overrides site root discovery when --root is not given.
	SiteRootEnvVar = "SITEMAINT_ROOT"

	defaultContentDir   = "wp-content"
	defaultMarkerFile   = ".maintenance"
	defaultTemplateFile = "maintenance.php"
)

// Paths holds resolved locations for one site.
type Paths struct {
	// Root is the site install root; the marker file lives here.
	Root string
	// ContentRoot is where relative template arguments are resolved.
	ContentRoot string
	// MarkerPath is the maintenance marker file.
	MarkerPath string
	// TemplatePath is the default maintenance template slot that receives override blocks.
	TemplatePath string
	// ConfigPath is the config file consulted for this site.
	ConfigPath string
}

// DefaultPaths returns the default paths for a site root.
func DefaultPaths(root string) Paths {
	contentRoot := filepath.Join(root, defaultContentDir)
	return Paths{
		Root:         root,
		ContentRoot:  contentRoot,
		MarkerPath:   filepath.Join(root, defaultMarkerFile),
		TemplatePath: filepath.Join(contentRoot, defaultTemplateFile),
		ConfigPath:   filepath.Join(root, FileName),
	}
}

// Paths resolves the configured locations against root.
// content_dir may be absolute or start with ~; template_file is relative to the content root unless absolute.
func (c *Config) Paths(root string) (Paths, error) {
	if strings.TrimSpace(root) == "" {
		return Paths{}, errors.New(messages.ConfigSiteRootRequired)
	}
	paths := DefaultPaths(root)

	contentDir, err := homedir.Expand(strings.TrimSpace(c.ContentDir))
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigExpandPathFmt, paths.ConfigPath, "content_dir", c.ContentDir, err)
	}
	if !filepath.IsAbs(contentDir) {
		contentDir = filepath.Join(root, contentDir)
	}
	paths.ContentRoot = filepath.Clean(contentDir)
	paths.MarkerPath = filepath.Join(root, c.MarkerFile)

	templateFile := c.TemplateFile
	if filepath.IsAbs(templateFile) {
		paths.TemplatePath = filepath.Clean(templateFile)
	} else {
		paths.TemplatePath = filepath.Join(paths.ContentRoot, templateFile)
	}
	return paths, nil
}
