// Package cli provides the Cobra command structure for mdblocks.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdblocks command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdblocks",
		Short: "Convert Markdown to block documents and back",
		Long: `mdblocks converts a small Markdown dialect to a block-structured rich
document and back again.

A document is a list of paragraphs, headings (levels 1-3), blockquotes and
indented code blocks, each carrying plain text plus bold, italic,
strikethrough and link ranges. An optional YAML front-matter header becomes
document metadata. Serializing a parsed document yields the canonical form
of the source, so mdblocks doubles as a formatter for that dialect.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			ctx := logging.WithLogger(cmd.Context(), logging.Default())
			cmd.SetContext(logging.WithFields(ctx, logging.FieldCommand, cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newHTMLCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs wraps a positional-argument validator so its failures map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
