package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/ui/pretty"
	"github.com/yaklabco/mdblocks/pkg/config"
)

func newInspectCommand() *cobra.Command {
	var detectLanguage bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the block and range structure of a document",
		Long: `Parse a Markdown file (or stdin) and print its metadata, blocks and
inline ranges with terminal styling. Ranges are shown as half-open rune
intervals of the block text.

Examples:
  mdblocks inspect README.md
  mdblocks inspect --color never notes.md | less`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := &config.Config{}
			if cmd.Flags().Changed("detect-language") {
				cliCfg.DetectLanguage = &detectLanguage
			}
			return runInspect(cmd, args, cliCfg)
		},
	}

	cmd.Flags().BoolVar(&detectLanguage, "detect-language", true,
		"record a detected language on code blocks")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, cliCfg *config.Config) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := parseInput(cmd, cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
	if _, err := fmt.Fprint(out, styles.FormatDocument(doc)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
