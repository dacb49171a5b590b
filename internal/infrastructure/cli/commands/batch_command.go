package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/application/check"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/helpers"
)

// NewBatchCommand creates the batch command
func NewBatchCommand(provider *app.Provider) *cobra.Command {
	var (
		asJSON     bool
		showPassed bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch <cases.yaml>",
		Short: "Validate a file of cases concurrently",
		Long: `Validate every case of a YAML cases file:

  cases:
    - name: glob with injection
      action: common-file-check
      input: file-pattern
      value: "*.json;rm -rf /"
      expect: reject
      reason: shell-injection-detected

Exit status is 1 when any expectation is unmet or cases were skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return runBatch(ctx, cmd, provider, args[0], asJSON, showPassed)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&showPassed, "show-passed", false, "List passing cases too")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort remaining cases after this duration")
	return cmd
}

// batchResultOutput is one --json entry.
type batchResultOutput struct {
	Name     string `json:"name"`
	Action   string `json:"action"`
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"`
	Mismatch string `json:"mismatch,omitempty"`
}

// runBatch loads the cases, runs them and renders the report
func runBatch(ctx context.Context, cmd *cobra.Command, provider *app.Provider, path string, asJSON, showPassed bool) error {
	cases, err := check.LoadCases(path)
	if err != nil {
		return err
	}

	container, err := provider.Get(ctx)
	if err != nil {
		return err
	}
	if container.CheckService == nil {
		return fmt.Errorf(ErrCheckServiceUnavailable)
	}

	report := container.CheckService.Batch(ctx, cases)

	if asJSON {
		results := make([]batchResultOutput, 0, len(report.Results))
		for _, res := range report.Results {
			results = append(results, batchResultOutput{
				Name:     res.Case.Name,
				Action:   res.Case.Action,
				Input:    res.Case.Input,
				Accepted: res.Verdict.Accepted,
				Reason:   string(res.Verdict.Reason),
				Detail:   res.Verdict.Detail,
				Skipped:  res.Skipped,
				Mismatch: res.Mismatch,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		helpers.NewRenderer(cmd.OutOrStdout()).BatchReport(report, showPassed)
	}

	if !report.OK() {
		return &RejectedError{Reason: fmt.Sprintf("%d failed and %d skipped case(s) in %s", report.Failed, report.Skipped, path)}
	}
	return nil
}
