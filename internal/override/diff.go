package override

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// RenderDiff renders a unified diff for the change, or "" when nothing changed.
func RenderDiff(change Change) string {
	if !change.Changed() {
		return ""
	}
	toName := change.Path + " (after)"
	if change.Deleted {
		toName = change.Path + " (deleted)"
	}
	diff := udiff.Unified(change.Path+" (before)", toName, ensureTrailingNewline(change.Before), ensureTrailingNewline(change.After))
	return ensureTrailingNewline(strings.TrimRight(diff, "\n"))
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
