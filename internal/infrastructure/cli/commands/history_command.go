package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/helpers"
	"github.com/doeshing/actionguard/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(provider *app.Provider) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the verdict audit log",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(provider),
		newHistoryStatsCommand(provider),
		newHistoryClearCommand(provider),
		newHistoryExportCommand(provider),
	)

	return historyCmd
}

// auditStore opens the audit store, warning when recording is disabled
func auditStore(cmd *cobra.Command, provider *app.Provider) (ports.AuditRepository, error) {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !container.Config.Audit.Enabled {
		fmt.Fprintln(cmd.ErrOrStderr(), MsgAuditDisabled)
	}
	store := container.OpenAuditStore()
	if store == nil {
		return nil, fmt.Errorf(ErrAuditStoreUnavailable)
	}
	return store, nil
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(provider *app.Provider) *cobra.Command {
	var (
		limit  int
		filter string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(cmd, provider)
			if err != nil {
				return err
			}
			return listAuditRecords(cmd.OutOrStdout(), store, limit, filter)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&filter, "filter", "", "Only show entries whose action, input or reason contains this text")
	return cmd
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show acceptance rate and top rejection reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(cmd, provider)
			if err != nil {
				return err
			}
			return showAuditStats(cmd.OutOrStdout(), store)
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(provider *app.Provider) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(cmd, provider)
			if err != nil {
				return err
			}
			if !yes && !helpers.PromptForConfirmation(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), "Delete all recorded verdicts?") {
				fmt.Fprintln(cmd.OutOrStdout(), MsgClearCancelled)
				return nil
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear audit log: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export verdicts to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(cmd, provider)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export audit log to %s: %w", args[0], err)
			}
			return nil
		},
	}
}

// listAuditRecords prints recent verdicts, newest first
func listAuditRecords(out io.Writer, store ports.AuditRepository, limit int, filter string) error {
	records, err := store.Records(limit, filter)
	if err != nil {
		return fmt.Errorf("failed to retrieve audit records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		return nil
	}

	for _, rec := range records {
		outcome := "accept"
		if !rec.Accepted {
			outcome = string(rec.Reason)
		}
		fmt.Fprintf(out, "%s | %s/%s | %s | %s\n",
			humanize.Time(rec.Timestamp),
			rec.Action,
			rec.Input,
			rec.Kind,
			outcome)
	}

	return nil
}

// showAuditStats displays totals and the most frequent rejection reasons
func showAuditStats(out io.Writer, store ports.AuditRepository) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("failed to compute audit statistics: %w", err)
	}

	if stats.Total == 0 {
		fmt.Fprintln(out, MsgNoAuditRecorded)
		return nil
	}

	fmt.Fprintf(out, "Verdicts: %s\nAccepted: %s\nRejected: %s\nAcceptance rate: %.1f%%\n",
		humanize.Comma(int64(stats.Total)),
		humanize.Comma(int64(stats.Accepted)),
		humanize.Comma(int64(stats.Rejected)),
		helpers.AcceptanceRate(stats.Accepted, stats.Total))

	if top := helpers.TopReasons(stats.ByReason, TopReasonsLimit); len(top) > 0 {
		fmt.Fprintln(out, "Top rejection reasons:")
		for _, stat := range top {
			fmt.Fprintf(out, "  %s (%s)\n", stat.Reason, humanize.Comma(int64(stat.Count)))
		}
	}

	if info, err := os.Stat(store.Path()); err == nil {
		fmt.Fprintf(out, "Store: %s (%s)\n", store.Path(), humanize.Bytes(uint64(info.Size())))
	}

	return nil
}
