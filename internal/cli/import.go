package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/goldmark"
	"github.com/yaklabco/mdblocks/pkg/markdown"
)

// importFlags holds the flags for the import command.
type importFlags struct {
	flavor string
	output string
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert arbitrary Markdown into the block dialect",
		Long: `Parse any CommonMark or GitHub Flavored Markdown file (or stdin) and
rewrite it in the block dialect.

Constructs the dialect lacks are degraded: list items become paragraphs,
headings deeper than level 3 become level 3, fenced code becomes indented
code, tables become one paragraph per row, images keep their alt text and
nested emphasis keeps only the outermost style. The front-matter header is
carried over unchanged.

Examples:
  mdblocks import CHANGELOG.md
  mdblocks import --flavor commonmark notes.md -o notes.blocks.md`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "source Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runImport(cmd *cobra.Command, args []string, flags *importFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		flavor, err := config.ParseFlavor(flags.flavor)
		if err != nil {
			return &usageError{err: err}
		}
		cliCfg.Import.Flavor = flavor
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	content, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	doc, err := goldmark.NewImporter(string(cfg.Import.Flavor)).Import(ctx, content)
	if err != nil {
		return &dataError{err: fmt.Errorf("import %s: %w", name, err)}
	}

	text, err := markdown.Format(doc)
	if err != nil {
		return fmt.Errorf("import %s: %w", name, err)
	}

	logging.FromContext(ctx).Debug("imported document",
		logging.FieldInput, name,
		logging.FieldFlavor, cfg.Import.Flavor,
		logging.FieldBlocks, len(doc.Blocks),
	)

	return writeOutput(cmd, flags.output, []byte(text))
}
