package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show actionguard version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			return displayVersionInformation(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// displayVersionInformation prints version, build metadata and the runtime platform
func displayVersionInformation(out io.Writer) error {
	fmt.Fprintf(out, "actionguard %s (%s/%s, %s)\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())

	if version.Commit != "" || version.BuildDate != "" {
		fmt.Fprintf(out, "commit %s built %s\n", orUnknown(version.Commit), orUnknown(version.BuildDate))
	}

	return nil
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
