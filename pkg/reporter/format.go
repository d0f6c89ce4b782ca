package reporter

import (
	"errors"
	"fmt"
	"strings"
)

// Format names how a fmt run is reported.
type Format string

// Report formats.
const (
	FormatText    Format = "text"
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
)

// ErrUnknownFormat indicates a report format name that is not one of Formats.
var ErrUnknownFormat = errors.New("unknown report format")

//nolint:gochecknoglobals // fixed table of report formats
var formatDescriptions = map[Format]string{
	FormatText:    "one line per file that changed or failed",
	FormatSummary: "counts only",
	FormatJSON:    "a machine-readable document of every file",
	FormatDiff:    "a unified diff of every file that changed",
}

// Formats returns every report format in help order.
func Formats() []Format {
	return []Format{FormatText, FormatSummary, FormatJSON, FormatDiff}
}

// Description returns a one-line description of f, or "" for an unknown
// format.
func (f Format) Description() string {
	return formatDescriptions[f]
}

// FormatNames joins the names of Formats with sep.
func FormatNames(sep string) string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, sep)
}

// ParseFormat parses a report format name. Case and surrounding space are
// ignored and an empty name means text.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatText, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, FormatNames(", "))
	}
	return f, nil
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	_, ok := formatDescriptions[f]
	return ok
}
