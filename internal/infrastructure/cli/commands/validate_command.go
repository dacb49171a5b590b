package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/application/check"
	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/helpers"
)

// ValidateOptions are the flags shared by `validate` and the root shortcut.
type ValidateOptions struct {
	JSON  bool
	Quiet bool
}

// BindValidateFlags registers the validate flags on fs. Parsing stops at the
// first positional argument so values such as "-h" or "-O2" are validated
// rather than read as flags.
func BindValidateFlags(fs *pflag.FlagSet, opts *ValidateOptions) {
	fs.SetInterspersed(false)
	fs.BoolVar(&opts.JSON, "json", false, "Print the verdict as JSON on stdout")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress diagnostics; rely on the exit status")
}

// NewValidateCommand creates the validate command
func NewValidateCommand(provider *app.Provider) *cobra.Command {
	var opts ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate <action> <input> <value>",
		Short: "Validate one value for an action input",
		Long: `Validate one value for a composite action input.

Exit status is 0 when the value is accepted, 1 when it is rejected and 2 on
usage or operational errors. Flags must precede <action>; everything after it
is taken literally, including values that begin with "-".`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunValidate(cmd, provider, args, opts)
		},
	}

	BindValidateFlags(cmd.Flags(), &opts)
	return cmd
}

// verdictOutput is the --json document.
type verdictOutput struct {
	Action string `json:"action"`
	Input  string `json:"input"`
	domain.Verdict
}

// RunValidate validates args (action, input, value) and reports the verdict
func RunValidate(cmd *cobra.Command, provider *app.Provider, args []string, opts ValidateOptions) error {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return err
	}
	if container.CheckService == nil {
		return fmt.Errorf(ErrCheckServiceUnavailable)
	}

	req := check.CheckRequest{Action: args[0], Input: args[1], Value: args[2]}
	verdict, err := container.CheckService.Check(cmd.Context(), req)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(verdictOutput{Action: req.Action, Input: req.Input, Verdict: verdict}); err != nil {
			return fmt.Errorf("failed to encode verdict: %w", err)
		}
	}
	if !opts.Quiet {
		helpers.NewRenderer(cmd.ErrOrStderr()).Verdict(req.Action, req.Input, verdict)
	}

	if !verdict.Accepted {
		return &RejectedError{Action: req.Action, Input: req.Input, Reason: string(verdict.Reason)}
	}
	return nil
}
