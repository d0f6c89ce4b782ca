package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/goldmark"
	"github.com/yaklabco/mdblocks/pkg/markdown"
)

// htmlFlags holds the flags for the html command.
type htmlFlags struct {
	unsafe bool
	output string
}

func newHTMLCommand() *cobra.Command {
	flags := &htmlFlags{}

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Preview a document as HTML",
		Long: `Normalize a Markdown file (or stdin) and render the result as HTML.

The front-matter header is dropped; only the blocks are rendered. Raw HTML
in the text is omitted unless --unsafe is given or html.unsafe is set in
the configuration.

Examples:
  mdblocks html README.md > README.html
  mdblocks html --unsafe notes.md -o notes.html`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.unsafe, "unsafe", false, "pass raw HTML through")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runHTML(cmd *cobra.Command, args []string, flags *htmlFlags) error {
	cliCfg := &config.Config{}
	cliCfg.HTML.Unsafe = flags.unsafe

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := parseInput(cmd, cfg, args)
	if err != nil {
		return err
	}
	doc.Metadata = nil

	text, err := markdown.Format(doc)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	html, err := goldmark.NewRenderer(cfg.HTML.Unsafe).Render([]byte(text))
	if err != nil {
		return err
	}

	return writeOutput(cmd, flags.output, html)
}
