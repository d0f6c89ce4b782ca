// Package runner formats many Markdown files concurrently: it discovers
// files, round-trips each one through the converter and writes the ones that
// change.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/fsutil"
)

// Mode selects what a run does with files whose normal form differs.
type Mode int

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota

	// ModeCheck only reports changed files.
	ModeCheck

	// ModeDryRun reports changed files with a diff of the rewrite.
	ModeDryRun
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot)
	// considered Markdown. Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode selects write, check or dry-run behavior.
	Mode Mode

	// Backup controls backups written before a file is replaced.
	Backup fsutil.BackupConfig

	// Logger receives per-file debug output. Nil discards.
	Logger *log.Logger
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs

	switch {
	case cfg.Check:
		opts.Mode = ModeCheck
	case cfg.DryRun:
		opts.Mode = ModeDryRun
	default:
		opts.Mode = ModeWrite
	}

	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.BackupsActive(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}

	return opts
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
