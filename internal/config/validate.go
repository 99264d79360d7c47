package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/sitemaint/internal/messages"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks required fields and value ranges.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return fmt.Errorf(messages.ConfigPathEmptyFmt, source, "content_dir")
	}
	if strings.TrimSpace(c.MarkerFile) == "" {
		return fmt.Errorf(messages.ConfigPathEmptyFmt, source, "marker_file")
	}
	if filepath.Base(c.MarkerFile) != c.MarkerFile {
		return fmt.Errorf(messages.ConfigFileNameHasDirFmt, source, "marker_file", c.MarkerFile)
	}
	if strings.TrimSpace(c.TemplateFile) == "" {
		return fmt.Errorf(messages.ConfigPathEmptyFmt, source, "template_file")
	}
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level != "" && !validLogLevels[level] {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, source, c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf(messages.ConfigLogLimitNegativeFmt, source, "log.max_size_mb")
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf(messages.ConfigLogLimitNegativeFmt, source, "log.max_backups")
	}
	return nil
}
