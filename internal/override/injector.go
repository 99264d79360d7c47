// Package override injects and strips the maintenance template redirect block.
package override

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/sitemaint/internal/messages"
)

const filePerm = 0o644

// ErrTemplateNotFound is returned when the template to include does not exist.
var ErrTemplateNotFound = errors.New(messages.MaintenanceErrTemplateNotFound)

// Change records one edit to a target file.
type Change struct {
	Path   string
	Before string
	After  string
	// Deleted is set when the edit removed the file.
	Deleted bool
}

// Changed reports whether the edit altered the file content.
func (c Change) Changed() bool {
	return c.Before != c.After || c.Deleted
}

// Injector edits the maintenance template file.
type Injector struct {
	sys System
}

// NewInjector returns an injector backed by sys.
func NewInjector(sys System) *Injector {
	return &Injector{sys: sys}
}

// Insert prepends an override block including templatePath to targetPath.
// The target is left untouched when templatePath does not exist.
func (inj *Injector) Insert(targetPath string, templatePath string) (Change, error) {
	info, err := inj.sys.Stat(templatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Change{}, fmt.Errorf(messages.MaintenanceTemplateNotFoundFmt, ErrTemplateNotFound, templatePath)
		}
		return Change{}, fmt.Errorf(messages.OverrideStatTemplateFailedFmt, templatePath, err)
	}
	if info.IsDir() {
		return Change{}, fmt.Errorf(messages.OverrideTemplateIsDirFmt, ErrTemplateNotFound, templatePath)
	}

	before, _, err := inj.read(targetPath)
	if err != nil {
		return Change{}, err
	}
	after := Block(templatePath) + before

	if err := inj.sys.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return Change{}, fmt.Errorf(messages.OverrideWriteFailedFmt, targetPath, err)
	}
	if err := inj.sys.WriteFileAtomic(targetPath, []byte(after), filePerm); err != nil {
		return Change{}, fmt.Errorf(messages.OverrideWriteFailedFmt, targetPath, err)
	}
	return Change{Path: targetPath, Before: before, After: after}, nil
}

// Remove strips the first override block from targetPath.
// A missing target or a target without a block is left as is.
// The target is deleted when only whitespace remains after the strip.
func (inj *Injector) Remove(targetPath string) (Change, error) {
	before, exists, err := inj.read(targetPath)
	if err != nil {
		return Change{}, err
	}
	unchanged := Change{Path: targetPath, Before: before, After: before}
	if !exists {
		return unchanged, nil
	}

	after, found := StripBlock(before)
	if !found {
		return unchanged, nil
	}

	if strings.TrimSpace(after) == "" {
		if err := inj.sys.Remove(targetPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Change{}, fmt.Errorf(messages.OverrideDeleteFailedFmt, targetPath, err)
		}
		return Change{Path: targetPath, Before: before, After: "", Deleted: true}, nil
	}

	if err := inj.sys.WriteFileAtomic(targetPath, []byte(after), filePerm); err != nil {
		return Change{}, fmt.Errorf(messages.OverrideWriteFailedFmt, targetPath, err)
	}
	return Change{Path: targetPath, Before: before, After: after}, nil
}

func (inj *Injector) read(path string) (string, bool, error) {
	data, err := inj.sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(messages.OverrideReadFailedFmt, path, err)
	}
	return string(data), true, nil
}
