// Package langdetect guesses the language of a code block's text.
// It combines go-enry's shebang and classifier strategies with a small table
// of highly indicative patterns. The result is informational: the converter
// records it on code nodes and never writes it back into Markdown.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = ""

// Language labels produced by the pattern table.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// sample is a code snippet pre-processed once for all pattern rules.
type sample struct {
	raw     string
	trimmed string
	lower   string
	upper   string
}

func newSample(code string) sample {
	trimmed := strings.TrimSpace(code)
	return sample{
		raw:     code,
		trimmed: trimmed,
		lower:   strings.ToLower(trimmed),
		upper:   strings.ToUpper(trimmed),
	}
}

// rule maps a pattern predicate to a language. Rules are tried in order of
// specificity.
type rule struct {
	lang  string
	match func(s sample) bool
}

//nolint:gochecknoglobals // Read-only rule table.
var rules = []rule{
	{langGo, func(s sample) bool { return strings.HasPrefix(s.trimmed, "package ") }},
	{langPython, isPython},
	{langHTML, func(s sample) bool {
		return containsAny(s.lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{langJSON, func(s sample) bool {
		return (strings.HasPrefix(s.trimmed, "{") || strings.HasPrefix(s.trimmed, "[")) &&
			strings.Contains(s.trimmed, `"`)
	}},
	{langDockerfile, func(s sample) bool {
		return strings.HasPrefix(s.trimmed, "FROM ") ||
			(strings.Contains(s.raw, "\nFROM ") && strings.Contains(s.raw, "\nRUN ")) ||
			(strings.Contains(s.raw, "WORKDIR ") && strings.Contains(s.raw, "COPY "))
	}},
	{langSQL, func(s sample) bool {
		return hasAnyPrefix(s.upper, "SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ")
	}},
	{langRust, func(s sample) bool {
		return containsAny(s.raw, "fn main()", "println!", "let mut ")
	}},
	{langBash, func(s sample) bool {
		return hasAnyPrefix(s.trimmed, "$ ", "echo ", "export ", "cd ", "sudo ")
	}},
	{langJavaScript, func(s sample) bool {
		return containsAny(s.raw, "=>", "const ", "let ", "console.log")
	}},
	{langYAML, isYAML},
}

//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lowercase language label for code, or Unknown.
func Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return Unknown
	}

	content := []byte(code)

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := newSample(code)
	for _, r := range rules {
		if r.match(s) {
			return r.lang
		}
	}

	// The classifier result is only trusted when it is unambiguous.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Unknown
}

func isPython(s sample) bool {
	if strings.Contains(s.raw, "def ") && strings.Contains(s.raw, "):") {
		return true
	}
	// Go uses "import (", Python does not.
	if strings.Contains(s.raw, "import ") && !strings.Contains(s.raw, "import (") &&
		(strings.Contains(s.raw, "from ") || strings.HasPrefix(s.trimmed, "import ")) {
		return true
	}
	return containsAny(s.raw, "__name__", "__main__")
}

// isYAML counts "key: value" lines and root list items.
func isYAML(s sample) bool {
	count := 0
	for _, line := range strings.Split(s.raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to lowercase labels.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
