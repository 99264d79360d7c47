package override

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	// BeginLine opens an override block; it is the first line of the block.
	BeginLine = "<?php /* BEGIN ADDED BY sitemaint maintenance command */"
	// EndLine closes an override block.
	EndLine = "/* END ADDED BY sitemaint maintenance command */ ?>"
)

var phpQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Block renders the override block that includes templatePath and stops the request.
func Block(templatePath string) string {
	var b strings.Builder
	b.WriteString(BeginLine)
	b.WriteString("\n")
	b.WriteString("include '")
	b.WriteString(phpQuoter.Replace(templatePath))
	b.WriteString("'; die();\n")
	b.WriteString(EndLine)
	b.WriteString("\n")
	return b.String()
}

// FindBlock locates the first override block in content.
// end is exclusive and covers the newline following EndLine when present.
func FindBlock(content string) (start int, end int, ok bool) {
	start = strings.Index(content, BeginLine)
	if start < 0 {
		return 0, 0, false
	}
	bodyStart := start + len(BeginLine)
	rel := strings.Index(content[bodyStart:], EndLine)
	if rel < 0 {
		return 0, 0, false
	}
	end = bodyStart + rel + len(EndLine)
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return start, end, true
}

// StripBlock removes the first override block and reports whether one was found.
func StripBlock(content string) (string, bool) {
	start, end, ok := FindBlock(content)
	if !ok {
		return content, false
	}
	return content[:start] + content[end:], true
}

// ResolvePath resolves a template argument: paths starting with a separator
// (after expanding a leading ~ or ~/) are absolute, anything else is relative
// to contentRoot. Other ~ forms, such as ~user/x.php, are plain relative names.
func ResolvePath(contentRoot string, template string) (string, error) {
	expanded := template
	if template == "~" || strings.HasPrefix(template, "~/") || strings.HasPrefix(template, "~"+string(filepath.Separator)) {
		home, err := homedir.Expand(template)
		if err != nil {
			return "", err
		}
		expanded = home
	}
	if strings.HasPrefix(expanded, string(filepath.Separator)) || filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(contentRoot, expanded), nil
}
