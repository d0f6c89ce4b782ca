package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/markdown"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func newRenderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Convert a raw block document to Markdown",
		Long: `Render raw content JSON (as printed by "mdblocks parse") back to Markdown.

The document is validated first: overlapping ranges, ranges outside the
block text, styled code blocks and heading levels outside 1-3 are all
reported and nothing is written.

Examples:
  mdblocks render notes.json
  mdblocks parse notes.md | mdblocks render
  mdblocks render notes.json -o notes.md`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, output string) error {
	content, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc, err := richdoc.UnmarshalRaw(content)
	if err != nil {
		return &dataError{err: fmt.Errorf("read %s: %w", name, err)}
	}

	text, err := markdown.Format(doc)
	if err != nil {
		return &dataError{err: fmt.Errorf("render %s: %w", name, err)}
	}

	logging.FromContext(commandContext(cmd)).Debug("rendered document",
		logging.FieldInput, name,
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldBytes, len(text),
	)

	return writeOutput(cmd, output, []byte(text))
}
