package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdblocks/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, build date, Go toolchain and platform
of mdblocks. With --short only the version is printed, for use in scripts.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}

			logging.NewWithWriter(cmd.OutOrStdout(), "info").Info("mdblocks",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGoVersion, runtime.Version(),
				logging.FieldPlatform, runtime.GOOS+"/"+runtime.GOARCH,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
