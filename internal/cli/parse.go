package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/internal/ui/pretty"
	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/markdown"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// parseFlags holds the flags for the parse command.
type parseFlags struct {
	format         string
	noKeys         bool
	detectLanguage bool
	output         string
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Convert Markdown to a raw block document",
		Long: `Parse a Markdown file (or stdin) into a block document and print it.

The json format prints raw content: a "blocks" array with inline style and
entity ranges, an "entityMap" holding link targets and a "data" object
holding the front-matter metadata. The text format prints the block and
range structure for reading.

Examples:
  mdblocks parse README.md
  cat notes.md | mdblocks parse
  mdblocks parse --format text --no-keys notes.md
  mdblocks parse notes.md -o notes.json`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "output format: json, text")
	cmd.Flags().BoolVar(&flags.noKeys, "no-keys", false, "omit generated block keys")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", true,
		"record a detected language on code blocks")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return &usageError{err: err}
		}
		cliCfg.Format = format
	}
	if cmd.Flags().Changed("detect-language") {
		detect := flags.detectLanguage
		cliCfg.DetectLanguage = &detect
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := parseInput(cmd, cfg, args)
	if err != nil {
		return err
	}
	if flags.noKeys {
		doc = stripKeys(doc)
	}

	var out []byte
	switch cfg.Format {
	case config.FormatText:
		out = []byte(pretty.NewStyles(false).FormatDocument(doc))
	default:
		data, err := richdoc.MarshalRaw(doc)
		if err != nil {
			return err
		}
		out = append(data, '\n')
	}

	return writeOutput(cmd, flags.output, out)
}

// parseInput reads the command input and converts it into a document whose
// blocks carry keys and detected languages.
func parseInput(cmd *cobra.Command, cfg *config.Config, args []string) (richdoc.Document, error) {
	content, name, err := readInput(cmd, args)
	if err != nil {
		return richdoc.Document{}, err
	}

	root, err := newConverter(cmd, cfg).Deserialize(string(content))
	if err != nil {
		return richdoc.Document{}, &dataError{err: fmt.Errorf("parse %s: %w", name, err)}
	}

	doc, err := markdown.Disassemble(root)
	if err != nil {
		return richdoc.Document{}, fmt.Errorf("parse %s: %w", name, err)
	}

	logging.FromContext(commandContext(cmd)).Debug("parsed document",
		logging.FieldInput, name,
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldMetadata, len(doc.Metadata),
	)

	return doc, nil
}

func stripKeys(doc richdoc.Document) richdoc.Document {
	blocks := make([]richdoc.Block, len(doc.Blocks))
	for i, b := range doc.Blocks {
		blocks[i] = b.WithoutKey()
	}
	doc.Blocks = blocks
	return doc
}
