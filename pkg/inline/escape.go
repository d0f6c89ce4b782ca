package inline

import "strings"

// isEscapable reports whether a backslash before r is consumed as an escape.
func isEscapable(r rune) bool {
	switch r {
	case '\\', '*', '_', '~', '[', ']', '(', ')', '#', '>', '-':
		return true
	default:
		return false
	}
}

// needsTextEscape reports whether r must be escaped in plain text or a link label.
func needsTextEscape(r rune) bool {
	switch r {
	case '\\', '*', '_', '~', '[', ']', '(', ')':
		return true
	default:
		return false
	}
}

// needsHrefEscape reports whether r must be escaped inside a link destination.
func needsHrefEscape(r rune) bool {
	return r == '\\' || r == '(' || r == ')'
}

// unescape resolves backslash escapes in src.
func unescape(src []rune) []rune {
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] == '\\' && i+1 < len(src) && isEscapable(src[i+1]) {
			i++
		}
		out = append(out, src[i])
	}
	return out
}

// EscapeLineStart escapes a leading '#' or '>' so the line is not read back
// as a heading or blockquote.
func EscapeLineStart(raw string) string {
	if strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, ">") {
		return `\` + raw
	}
	return raw
}
