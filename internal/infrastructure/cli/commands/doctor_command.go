package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, catalog and rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, provider)
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, provider *app.Provider) error {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return err
	}
	if container.DoctorService == nil {
		return fmt.Errorf(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	helpers.NewRenderer(cmd.OutOrStdout()).HealthReport(report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	if !report.Healthy() {
		return fmt.Errorf("diagnostics completed with failed checks")
	}

	return nil
}
