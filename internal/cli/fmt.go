package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/reporter"
	"github.com/yaklabco/mdblocks/pkg/runner"
)

// fmtFlags holds the flags for the fmt command that do not map directly
// onto config fields.
type fmtFlags struct {
	ignore     []string
	extensions []string
	report     string
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite Markdown files in canonical form",
		Long:  fmtLongDescription + reportFormatsHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report unformatted files without writing")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show a diff of each rewrite without writing")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to treat as Markdown")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when rewriting")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: "+reporter.FormatNames(", "))

	return cmd
}

const fmtLongDescription = `Round-trip Markdown files through the converter and rewrite the ones
whose canonical form differs.

By default, formats all .md and .markdown files in the current directory
and subdirectories; hidden files and directories are skipped. Specify paths
to format specific files or directories. Files are replaced atomically and,
unless disabled, the previous content is kept in a sidecar backup.

Examples:
  mdblocks fmt                    # Format current directory
  mdblocks fmt docs/ README.md    # Format specific paths
  mdblocks fmt --check            # Exit 1 if any file needs formatting
  mdblocks fmt --dry-run          # Show diffs without writing
  mdblocks fmt --check --report json
  mdblocks fmt --ignore 'vendor/**'`

// reportFormatsHelp lists the --report formats for the long help.
func reportFormatsHelp() string {
	var b strings.Builder
	b.WriteString("\n\nReport formats:\n")
	for _, f := range reporter.Formats() {
		fmt.Fprintf(&b, "  %-8s %s\n", f, f.Description())
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func runFmt(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fmtFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return &usageError{err: err}
	}

	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("ext") {
		exts := make([]string, 0, len(flags.extensions))
		for _, ext := range flags.extensions {
			exts = append(exts, config.NormalizeExtension(ext))
		}
		cliCfg.Extensions = exts
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	opts.Logger = logger

	logger.Debug("starting fmt run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldCheck, cfg.Check,
		logging.FieldDryRun, cfg.DryRun,
	)

	result, err := runner.New(newConverter(cmd, cfg)).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("fmt run failed: %w", err)
	}

	logger.Debug("fmt run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      string(cfg.Color),
		Mode:       opts.Mode,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		var errs []error
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				errs = append(errs, outcome.Error)
			}
		}
		return fmt.Errorf("%d %s failed: %w", len(errs), pluralFiles(len(errs)), errors.Join(errs...))
	}

	if opts.Mode != runner.ModeWrite && result.HasChanges() {
		return ErrUnformatted
	}

	return nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
