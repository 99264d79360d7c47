// Package root locates the site install root.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// siteMarkers are the files whose presence identifies a site root, in lookup order.
var siteMarkers = []string{".sitemaint.toml", "wp-load.php"}

// FindSiteRoot searches upwards from start for a directory holding a site marker file.
// It returns the root, whether one was found, and an error when a marker exists but is not a regular file.
func FindSiteRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New("start path is required")
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		for _, name := range siteMarkers {
			found, err := isRegularFile(filepath.Join(dir, name))
			if err != nil {
				return "", false, err
			}
			if found {
				return dir, true, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%s exists but is not a regular file", path)
	}
	return true, nil
}
