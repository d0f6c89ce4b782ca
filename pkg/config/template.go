package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a commented minimal template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		data, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
		if err != nil {
			return nil, fmt.Errorf("generate full template: %w", err)
		}
		return data, nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Record a detected language on code blocks
# detect_language: true

# Styled output: auto, always or never
# color: auto

# Number of parallel workers for fmt (0 = auto)
# jobs: 0

# File extensions treated as Markdown
# extensions:
#   - .md
#   - .markdown

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Backups written before fmt rewrites a file
backups:
  enabled: true
  mode: sidecar

# Pass raw HTML through when rendering
# html:
#   unsafe: false

# Source flavor for the import command: commonmark or gfm
# import:
#   flavor: gfm
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdblocks configuration
# See: https://github.com/yaklabco/mdblocks`
}
