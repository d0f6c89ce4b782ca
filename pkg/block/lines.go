package block

import "strings"

// codeIndent is the prefix that marks a code line.
const codeIndent = "    "

// splitLines splits body into physical lines. It handles both LF (\n) and
// CRLF (\r\n) line endings; a trailing newline does not produce an extra
// empty line.
func splitLines(body string) []string {
	if body == "" {
		return nil
	}

	lines := strings.Split(body, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	return lines
}

// isBlank reports whether line consists solely of whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
