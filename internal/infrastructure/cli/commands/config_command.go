package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/actionguard/internal/app"
	configapp "github.com/doeshing/actionguard/internal/application/config"
	configinfra "github.com/doeshing/actionguard/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(provider *app.Provider) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect actionguard configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), provider)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(provider),
		newConfigPathCommand(provider),
		newConfigInitCommand(provider),
		newConfigValidateCommand(provider),
	)

	return configCmd
}

// loaderFor returns a loader honoring --config without building the container
func loaderFor(provider *app.Provider) *configinfra.FileLoader {
	return configinfra.NewFileLoader(provider.Options.ConfigPath)
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(provider *app.Provider) *cobra.Command {
	var diff bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if diff {
				return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), provider)
			}
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), provider)
		},
	}

	cmd.Flags().BoolVar(&diff, "diff", false, "Show only differences from the defaults")
	return cmd
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := loaderFor(provider)
			status := "missing, defaults in effect"
			if loader.Exists() {
				status = "present"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", loader.Path(), status)
			return nil
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration, input catalog and rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := provider.Get(cmd.Context()); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, provider *app.Provider) error {
	cfg, err := loaderFor(provider).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, provider *app.Provider) error {
	currentConfig, err := loaderFor(provider).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}
	if err := configapp.Validate(currentConfig); err != nil {
		fmt.Fprintf(out, "warning: %v\n", err)
	}

	defaultConfig, err := configinfra.DefaultConfig()
	if err != nil {
		return err
	}
	diff := cmp.Diff(defaultConfig, currentConfig)

	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}
