package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdblocks/pkg/fsutil"
)

// Exit codes for mdblocks.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnformatted indicates fmt --check found files that need formatting.
	ExitUnformatted = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or malformed input.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUnformatted signals that fmt --check or --dry-run found files whose
// normal form differs. It carries no message worth logging.
var ErrUnformatted = errors.New("unformatted files found")

// usageError marks an error caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// dataError marks invalid configuration or an input document that cannot be
// converted.
type dataError struct {
	err error
}

func (e *dataError) Error() string { return e.err.Error() }
func (e *dataError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *usageError
	var dataErr *dataError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrUnformatted):
		return ExitUnformatted
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.As(err, &dataErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
