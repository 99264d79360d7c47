// Package marker reads and writes the maintenance flag file.
//
// The file is a PHP snippet the site runtime includes on every request:
//
//	<?php $upgrading = time();
//	<?php $upgrading = 1767225600;
//
// The runtime treats the site as under maintenance while the assigned
// instant is less than ten minutes old, so time() means "always on".
package marker

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/conn-castle/sitemaint/internal/messages"
)

const (
	filePerm     = 0o644
	alwaysOnExpr = "time()"
)

var assignmentPattern = regexp.MustCompile(`\$upgrading\s*=\s*([0-9]+)`)

// Parsed is a marker file read back from disk.
type Parsed struct {
	// Timestamp is the persisted instant; zero unless HasTimestamp.
	Timestamp time.Time
	// HasTimestamp is false for the always-on sentinel and for unrecognized content.
	HasTimestamp bool
}

// Store manages one marker file.
type Store struct {
	sys  System
	path string
}

// NewStore returns a store for the marker file at path.
func NewStore(sys System, path string) *Store {
	return &Store{sys: sys, path: path}
}

// Path returns the marker file location.
func (s *Store) Path() string {
	return s.path
}

// Write replaces the marker file. A nil at writes the always-on sentinel.
func (s *Store) Write(at *time.Time) error {
	if err := s.sys.WriteFileAtomic(s.path, Encode(at), filePerm); err != nil {
		return fmt.Errorf(messages.MarkerWriteFailedFmt, s.path, err)
	}
	return nil
}

// Read returns nil when the marker file does not exist.
func (s *Store) Read() (*Parsed, error) {
	data, err := s.sys.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.MarkerReadFailedFmt, s.path, err)
	}
	parsed := Decode(data)
	return &parsed, nil
}

// Exists reports whether the marker file is present.
func (s *Store) Exists() (bool, error) {
	if _, err := s.sys.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.MarkerStatFailedFmt, s.path, err)
	}
	return true, nil
}

// Delete removes the marker file; a missing file is not an error.
func (s *Store) Delete() error {
	if err := s.sys.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.MarkerDeleteFailedFmt, s.path, err)
	}
	return nil
}

// Encode renders marker file content.
func Encode(at *time.Time) []byte {
	value := alwaysOnExpr
	if at != nil {
		value = strconv.FormatInt(at.Unix(), 10)
	}
	return []byte("<?php $upgrading = " + value + ";")
}

// Decode extracts the first integer assigned to $upgrading.
// Content without one (including the time() sentinel) decodes as "no timestamp".
func Decode(data []byte) Parsed {
	match := assignmentPattern.FindSubmatch(data)
	if match == nil {
		return Parsed{}
	}
	unix, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return Parsed{}
	}
	return Parsed{Timestamp: time.Unix(unix, 0), HasTimestamp: true}
}
