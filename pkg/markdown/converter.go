package markdown

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Converter converts Markdown text to document trees and back. A Converter
// holds no per-call state and is safe for concurrent use.
type Converter struct {
	detectLanguage bool
	newKey         func() string
	logger         *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLanguageDetection enables or disables language detection for code
// blocks during assembly. Enabled by default.
func WithLanguageDetection(enabled bool) Option {
	return func(c *Converter) {
		c.detectLanguage = enabled
	}
}

// WithKeyGenerator sets the function that assigns keys to assembled blocks.
// The default generates random UUIDs.
func WithKeyGenerator(fn func() string) Option {
	return func(c *Converter) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// WithLogger sets the logger for debug output. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{
		detectLanguage: true,
		newKey:         uuid.NewString,
		logger:         log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
