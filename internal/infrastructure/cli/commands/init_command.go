package commands

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/actionguard/internal/infrastructure/config"
)

// newConfigInitCommand creates the 'config init' subcommand. It writes the
// default configuration so it can be edited.
func newConfigInitCommand(provider *app.Provider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration to ~/.actionguard/config.yaml (or --config).

Afterwards you can:
  1. Point catalog.file at your own input table or catalog.manifests_dir at
     a directory of composite actions
  2. Enable audit.enabled to record verdicts
  3. Run 'actionguard doctor' to verify the setup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, provider, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config without prompting")

	return cmd
}

// runConfigInit writes the defaults, confirming before an overwrite
func runConfigInit(cmd *cobra.Command, provider *app.Provider, force bool) error {
	loader := loaderFor(provider)

	if loader.Exists() && !force {
		question := fmt.Sprintf("Config already exists at %s. Overwrite?", loader.Path())
		if !helpers.PromptForConfirmation(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), question) {
			fmt.Fprintln(cmd.OutOrStdout(), MsgInitCancelled)
			return nil
		}
	}

	cfg, err := configinfra.DefaultConfig()
	if err != nil {
		return err
	}

	if err := helpers.SaveConfigWithValidation(loader, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", loader.Path())
	return nil
}
