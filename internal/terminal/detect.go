// Package terminal provides terminal detection utilities.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/conn-castle/sitemaint/internal/messages"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// IsInteractive reports whether out is a terminal.
func IsInteractive(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// ColorEnabled resolves a --color mode for out. NO_COLOR disables auto mode.
func ColorEnabled(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false, nil
		}
		return IsInteractive(out), nil
	default:
		return false, fmt.Errorf(messages.RootColorModeInvalidFmt, mode)
	}
}
