// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldBlocks   = "blocks"
	FieldKind     = "kind"
	FieldMetadata = "metadata"
	FieldLanguage = "language"
	FieldBytes    = "bytes"

	// Run fields.
	FieldCommand = "command"
	FieldCheck   = "check"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldFlavor  = "flavor"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGoVersion = "go"
	FieldPlatform  = "platform"
)
