package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdblocks/internal/configloader"
	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/fsutil"
	"github.com/yaklabco/mdblocks/pkg/markdown"
)

// stdinName is the display name used for input read from stdin.
const stdinName = "<stdin>"

// outputFilePermissions is the mode for files created with --output.
const outputFilePermissions = 0o644

// errNoInput is returned when no file is named and stdin is a terminal.
var errNoInput = errors.New("no input: pass a file or pipe a document on stdin")

// loadConfig resolves the layered configuration for a command. cliCfg holds
// the values of flags the user set explicitly and may be nil.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &dataError{err: fmt.Errorf("load configuration: %w", err)}
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput reads the file named by args[0], or stdin when args is empty or
// names "-". It returns the content and a display name.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) > 0 && args[0] != "-" {
		content, _, err := fsutil.ReadFile(commandContext(cmd), args[0])
		if err != nil {
			return nil, "", err
		}
		return content, args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, "", &usageError{err: errNoInput}
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", stdinName, err)
	}
	return content, stdinName, nil
}

// writeOutput writes content to path, or to the command's stdout when path
// is empty. A file whose content is already identical is left untouched.
func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	ctx := commandContext(cmd)
	written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, outputFilePermissions)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("wrote output",
		logging.FieldOutput, path,
		logging.FieldBytes, len(content),
		"changed", written,
	)
	return nil
}

// newConverter builds a converter configured from cfg that logs through the
// command's logger.
func newConverter(cmd *cobra.Command, cfg *config.Config) *markdown.Converter {
	return markdown.New(
		markdown.WithLanguageDetection(cfg.LanguageDetection()),
		markdown.WithLogger(logging.FromContext(commandContext(cmd))),
	)
}
