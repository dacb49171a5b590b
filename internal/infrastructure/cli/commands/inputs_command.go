package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/domain"
)

// NewInputsCommand creates the inputs command
func NewInputsCommand(provider *app.Provider) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inputs [action]",
		Short: "List catalogued action inputs and their kinds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			specs, err := collectInputs(container, args)
			if err != nil {
				return err
			}
			if asJSON {
				return writeInputsJSON(cmd.OutOrStdout(), specs)
			}
			return writeInputsTable(cmd.OutOrStdout(), specs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print inputs as JSON")
	return cmd
}

// collectInputs returns every spec, or those of one action
func collectInputs(container *app.Container, args []string) ([]domain.InputSpec, error) {
	if len(args) == 1 {
		specs := container.Catalog.Inputs(args[0])
		if len(specs) == 0 {
			return nil, fmt.Errorf("action %q is not in the catalog", args[0])
		}
		return specs, nil
	}

	var specs []domain.InputSpec
	for _, action := range container.Catalog.Actions() {
		specs = append(specs, container.Catalog.Inputs(action)...)
	}
	return specs, nil
}

// inputOutput is one --json entry.
type inputOutput struct {
	Action   string      `json:"action"`
	Input    string      `json:"input"`
	Kind     domain.Kind `json:"kind"`
	Required bool        `json:"required"`
	Default  string      `json:"default,omitempty"`
	Source   string      `json:"source,omitempty"`
}

func writeInputsJSON(out io.Writer, specs []domain.InputSpec) error {
	entries := make([]inputOutput, 0, len(specs))
	for _, spec := range specs {
		entries = append(entries, inputOutput{
			Action:   spec.Action,
			Input:    spec.Input,
			Kind:     spec.Kind,
			Required: spec.Required,
			Default:  spec.Default,
			Source:   spec.Source,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeInputsTable(out io.Writer, specs []domain.InputSpec) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tINPUT\tKIND\tREQUIRED\tDEFAULT")
	for _, spec := range specs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", spec.Action, spec.Input, spec.Kind, spec.Required, spec.Default)
	}
	return tw.Flush()
}
