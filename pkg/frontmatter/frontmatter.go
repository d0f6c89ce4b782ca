// Package frontmatter splits a YAML metadata header from a Markdown body and
// renders metadata back into a header.
//
// A header is a block delimited by "---" lines at the very start of the
// text:
//
//	---
//	title: Hello
//	---
//
//	# Body
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a header.
const Delimiter = "---"

// ErrInvalidHeader indicates a closed header whose content is not a YAML
// mapping.
var ErrInvalidHeader = errors.New("invalid front-matter header")

//nolint:gochecknoglobals // Immutable format descriptor.
var yamlFormat = adrg.NewFormat(Delimiter, Delimiter, yaml.Unmarshal)

// Split separates the metadata header from the body. Without a header the
// metadata is nil and the body is text unchanged. An opening delimiter with
// no closing one is not a header: it stays in the body as ordinary text.
func Split(text string) (map[string]any, string, error) {
	if !HasHeader(text) {
		return nil, text, nil
	}

	var meta map[string]any
	body, err := adrg.Parse(strings.NewReader(text), &meta, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	return meta, string(body), nil
}

// HasHeader reports whether text opens with a delimiter line and has a
// closing delimiter line after it.
func HasHeader(text string) bool {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimSuffix(first, "\r") != Delimiter {
		return false
	}
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimSuffix(line, "\r") == Delimiter {
			return true
		}
	}
	return false
}

// RenderHeader encodes meta as a header followed by a blank line:
// "---\n<yaml>---\n\n". Values YAML cannot represent are skipped, at any
// depth. An empty mapping, or one left empty after skipping, renders as "".
func RenderHeader(meta map[string]any) (string, error) {
	clean := sanitizeMap(meta)
	if len(clean) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(clean); err != nil {
		return "", fmt.Errorf("encode front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front-matter: %w", err)
	}

	buf.WriteString(Delimiter + "\n\n")
	return buf.String(), nil
}

func sanitizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		if clean, ok := sanitize(value); ok {
			out[key] = clean
		}
	}
	return out
}

// sanitize drops values the encoder rejects. Mappings and sequences are
// cleaned element by element; other values are trial-encoded.
func sanitize(value any) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return sanitizeMap(v), true
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if clean, ok := sanitize(item); ok {
				out = append(out, clean)
			}
		}
		return out, true
	default:
		return value, encodable(value)
	}
}

func encodable(value any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	_, err := yaml.Marshal(value)
	return err == nil
}
