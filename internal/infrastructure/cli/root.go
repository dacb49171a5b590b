package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/commands"
)

// RejectedError is returned when a value is rejected; main maps it to exit status 1.
type RejectedError = commands.RejectedError

// NewRootCmd wires the cobra root command. The container is built on first
// use by provider, after persistent flags are parsed.
func NewRootCmd(provider *app.Provider) *cobra.Command {
	var opts commands.ValidateOptions

	root := &cobra.Command{
		Use:   "actionguard [action input value]",
		Short: "actionguard - validate composite action inputs",
		Long: `actionguard checks values passed to composite GitHub Action inputs before
they reach a shell step. It rejects shell injection, path traversal and values
that do not match the input's declared kind.

  actionguard sync-labels labels .github/labels.yml
  actionguard validate common-file-check file-pattern '*.{js,ts}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return cmd.Help()
			case 3:
				return commands.RunValidate(cmd, provider, args, opts)
			default:
				return fmt.Errorf("expected <action> <input> <value>, got %d argument(s)", len(args))
			}
		},
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&provider.Options.ConfigPath, "config", provider.Options.ConfigPath, "Config file (default ~/.actionguard/config.yaml)")
	root.PersistentFlags().BoolVarP(&provider.Options.Verbose, "verbose", "v", provider.Options.Verbose, "Enable debug logging on stderr")
	commands.BindValidateFlags(root.Flags(), &opts)

	root.AddCommand(
		commands.NewValidateCommand(provider),
		commands.NewBatchCommand(provider),
		commands.NewInputsCommand(provider),
		commands.NewDoctorCommand(provider),
		commands.NewConfigCommand(provider),
		commands.NewHistoryCommand(provider),
		commands.NewVersionCommand(),
	)
	return root
}
