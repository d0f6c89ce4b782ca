package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdblocks/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Mode is the mode of the run being reported. It selects the wording
	// of the summary ("reformatted" or "would be reformatted").
	Mode runner.Mode

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Compact disables JSON indentation.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
		Mode:   runner.ModeWrite,
	}
}
