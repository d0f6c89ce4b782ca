package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat parses a parse-command output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or text)", s)
	}
}

// ParseFlavor parses a Markdown flavor name.
func ParseFlavor(s string) (Flavor, error) {
	switch f := Flavor(strings.ToLower(strings.TrimSpace(s))); f {
	case FlavorCommonMark, FlavorGFM:
		return f, nil
	case "":
		return FlavorGFM, nil
	default:
		return "", fmt.Errorf("unknown flavor %q (want commonmark or gfm)", s)
	}
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
